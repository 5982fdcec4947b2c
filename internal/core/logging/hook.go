package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts command and task_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if name := GetCommand(ctx); name != "" {
		e.Str("command", name)
	}

	if id := GetTaskID(ctx); id != "" {
		e.Str("task_id", id)
	}
}
