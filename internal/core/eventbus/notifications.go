package eventbus

import (
	"fmt"

	"github.com/hay-kot/taskr/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	failing := false

	r.bus.SubscribeSaveFailed(func(p SaveFailedPayload) {
		failing = true
		if p.Failures > 1 {
			r.notifyf(notify.LevelError, "save failed (%d in a row): %v", p.Failures, p.Err)
			return
		}
		r.notifyf(notify.LevelError, "save failed: %v", p.Err)
	})

	r.bus.SubscribeSaveCompleted(func(p SaveCompletedPayload) {
		if !failing {
			return
		}
		failing = false
		r.notifyf(notify.LevelInfo, "saved %d tasks", p.Count)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
