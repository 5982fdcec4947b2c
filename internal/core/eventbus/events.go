// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within taskr.
package eventbus

import (
	"time"

	"github.com/hay-kot/taskr/internal/core/notify"
	"github.com/hay-kot/taskr/internal/core/task"
)

// Event names a kind of event published on the bus.
type Event string

// Keep list sorted A-Z
const (
	EventNotificationPublished Event = "notification.published"
	EventPendingChanged        Event = "pending.changed"
	EventSaveCompleted         Event = "save.completed"
	EventSaveFailed            Event = "save.failed"
	EventTasksChanged          Event = "tasks.changed"
)

// TasksChangedPayload is emitted after every committed change to the
// collection. Tasks is a copy owned by the receiver.
type TasksChangedPayload struct {
	Tasks task.Collection
}

// PendingChangedPayload is emitted when the pending confirmation changes.
type PendingChangedPayload struct {
	Old task.PendingAction
	New task.PendingAction
}

// SaveCompletedPayload is emitted after a snapshot is written.
type SaveCompletedPayload struct {
	Count    int
	Duration time.Duration
}

// SaveFailedPayload is emitted when a snapshot could not be written.
// Failures counts consecutive failed writes.
type SaveFailedPayload struct {
	Err      error
	Count    int
	Failures int
}

// NotificationPublishedPayload carries a user-facing notification.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}
