package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers events to subscribers on a single dispatch goroutine,
// in publish order. Publishing never blocks; when the buffer is full the
// event is dropped and the OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size. Call Start to begin
// dispatching.
func New(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled. Events still buffered at
// cancellation are delivered before Start returns.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			bus.drain()
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) drain() {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		default:
			return
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := bus.subs[env.event]
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

// PublishTasksChanged enqueues a tasks.changed event.
func (bus *EventBus) PublishTasksChanged(p TasksChangedPayload) {
	bus.send(EventTasksChanged, p)
}

// SubscribeTasksChanged registers fn for tasks.changed events.
func (bus *EventBus) SubscribeTasksChanged(fn func(TasksChangedPayload)) {
	bus.subscribe(EventTasksChanged, func(p any) { fn(p.(TasksChangedPayload)) })
}

// PublishPendingChanged enqueues a pending.changed event.
func (bus *EventBus) PublishPendingChanged(p PendingChangedPayload) {
	bus.send(EventPendingChanged, p)
}

// SubscribePendingChanged registers fn for pending.changed events.
func (bus *EventBus) SubscribePendingChanged(fn func(PendingChangedPayload)) {
	bus.subscribe(EventPendingChanged, func(p any) { fn(p.(PendingChangedPayload)) })
}

// PublishSaveCompleted enqueues a save.completed event.
func (bus *EventBus) PublishSaveCompleted(p SaveCompletedPayload) {
	bus.send(EventSaveCompleted, p)
}

// SubscribeSaveCompleted registers fn for save.completed events.
func (bus *EventBus) SubscribeSaveCompleted(fn func(SaveCompletedPayload)) {
	bus.subscribe(EventSaveCompleted, func(p any) { fn(p.(SaveCompletedPayload)) })
}

// PublishSaveFailed enqueues a save.failed event.
func (bus *EventBus) PublishSaveFailed(p SaveFailedPayload) {
	bus.send(EventSaveFailed, p)
}

// SubscribeSaveFailed registers fn for save.failed events.
func (bus *EventBus) SubscribeSaveFailed(fn func(SaveFailedPayload)) {
	bus.subscribe(EventSaveFailed, func(p any) { fn(p.(SaveFailedPayload)) })
}

// PublishNotificationPublished enqueues a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers fn for notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}
