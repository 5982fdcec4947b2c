package eventbus

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RegisterDebugLogger registers bus hooks that log event activity at debug
// level, buffer-full drops as warnings and subscriber panics as errors.
func RegisterDebugLogger(bus *EventBus, logger zerolog.Logger) {
	bus.OnPublish(func(event Event, payload any) {
		e := logger.Debug().Str("event", string(event))
		switch p := payload.(type) {
		case TasksChangedPayload:
			e = e.Int("count", len(p.Tasks))
		case PendingChangedPayload:
			e = e.Stringer("old", p.Old).Stringer("new", p.New)
		case SaveCompletedPayload:
			e = e.Int("count", p.Count).Dur("duration", p.Duration)
		case SaveFailedPayload:
			e = e.AnErr("save_err", p.Err).Int("failures", p.Failures)
		}
		e.Msg("event fired")
	})

	bus.OnDrop(func(event Event, _ any) {
		logger.Warn().Str("event", string(event)).Msg("event dropped: buffer full")
	})

	bus.OnPanic(func(event Event, _ any, recovered any) {
		logger.Error().
			Str("event", string(event)).
			Str("panic", fmt.Sprint(recovered)).
			Msg("subscriber panicked")
	})
}
