// Package logging provides zerolog helpers shared across taskr: component
// loggers and a hook that lifts request values off the context.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger derived from the global logger, tagged with
// the "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
