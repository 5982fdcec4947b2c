package eventbus_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/taskr/internal/core/eventbus"
	"github.com/hay-kot/taskr/internal/core/eventbus/testbus"
	"github.com/hay-kot/taskr/internal/core/task"
)

func TestRegisterDebugLogger(t *testing.T) {
	tb := testbus.New(t)

	var buf bytes.Buffer
	eventbus.RegisterDebugLogger(tb.EventBus, zerolog.New(&buf).Level(zerolog.DebugLevel))

	tb.PublishTasksChanged(eventbus.TasksChangedPayload{Tasks: task.Collection{{ID: "a", Text: "x"}}})
	tb.PublishPendingChanged(eventbus.PendingChangedPayload{
		Old: task.NoPending,
		New: task.PendingAction{Kind: task.PendingDelete, TaskID: "a"},
	})
	tb.PublishSaveCompleted(eventbus.SaveCompletedPayload{Count: 1, Duration: time.Millisecond})
	tb.PublishSaveFailed(eventbus.SaveFailedPayload{Err: errors.New("disk full"), Failures: 1})

	tb.AssertPublished(t, eventbus.EventSaveFailed)

	out := buf.String()
	assert.Contains(t, out, `"event":"tasks.changed"`)
	assert.Contains(t, out, `"new":"confirm-delete(a)"`)
	assert.Contains(t, out, `"save_err":"disk full"`)
}

func TestEventBus_SubscriberPanic(t *testing.T) {
	tb := testbus.New(t)

	panicked := make(chan eventbus.Event, 1)
	tb.OnPanic(func(event eventbus.Event, _ any, _ any) {
		panicked <- event
	})

	tb.SubscribeTasksChanged(func(eventbus.TasksChangedPayload) {
		panic("boom")
	})

	tb.PublishTasksChanged(eventbus.TasksChangedPayload{})

	select {
	case event := <-panicked:
		assert.Equal(t, eventbus.EventTasksChanged, event)
	case <-time.After(time.Second):
		t.Fatal("panic hook did not fire")
	}

	// The dispatcher keeps running after a panic.
	tb.PublishSaveCompleted(eventbus.SaveCompletedPayload{Count: 2})
	tb.AssertPublished(t, eventbus.EventSaveCompleted)
}

func TestEventBus_DropWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped []eventbus.Event
	bus.OnDrop(func(event eventbus.Event, _ any) {
		dropped = append(dropped, event)
	})

	// Not started: the first event fills the buffer, the second is dropped.
	bus.PublishTasksChanged(eventbus.TasksChangedPayload{})
	bus.PublishSaveCompleted(eventbus.SaveCompletedPayload{})

	assert.Equal(t, []eventbus.Event{eventbus.EventSaveCompleted}, dropped)
}

func TestTaskNotifier(t *testing.T) {
	tb := testbus.New(t)
	n := eventbus.NewTaskNotifier(tb.EventBus)

	ctrl := task.NewController(task.Deps{Notifier: n, Logger: zerolog.Nop()})
	ctrl.AddTask("buy milk")
	ctrl.RequestDelete(ctrl.Tasks()[0])

	tb.AssertPublished(t, eventbus.EventPendingChanged)

	changed := tb.Of(eventbus.EventTasksChanged)
	if assert.Len(t, changed, 1) {
		p := changed[0].(eventbus.TasksChangedPayload)
		assert.Equal(t, "buy milk", p.Tasks[0].Text)
	}

	pending := tb.Of(eventbus.EventPendingChanged)[0].(eventbus.PendingChangedPayload)
	assert.True(t, pending.Old.IsNone())
	assert.Equal(t, task.PendingDelete, pending.New.Kind)
}
