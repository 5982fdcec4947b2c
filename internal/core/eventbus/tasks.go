package eventbus

import "github.com/hay-kot/taskr/internal/core/task"

// TaskNotifier publishes controller state changes on the bus.
type TaskNotifier struct {
	bus *EventBus
}

var _ task.Notifier = (*TaskNotifier)(nil)

// NewTaskNotifier returns a task.Notifier backed by bus.
func NewTaskNotifier(bus *EventBus) *TaskNotifier {
	return &TaskNotifier{bus: bus}
}

func (n *TaskNotifier) TasksChanged(tasks task.Collection) {
	n.bus.PublishTasksChanged(TasksChangedPayload{Tasks: tasks})
}

func (n *TaskNotifier) PendingChanged(old, next task.PendingAction) {
	n.bus.PublishPendingChanged(PendingChangedPayload{Old: old, New: next})
}
