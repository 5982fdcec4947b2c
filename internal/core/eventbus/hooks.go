package eventbus

import "sync"

// hooks observe the bus itself rather than a single event type.
type hooks struct {
	mu        sync.RWMutex
	onPublish []func(Event, any)
	onDrop    []func(Event, any)
	onPanic   []func(Event, any, any)
}

// OnPublish registers fn to run after an event is enqueued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
}

// OnDrop registers fn to run when an event is discarded because the buffer
// is full.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onDrop = append(bus.hooks.onDrop, fn)
}

// OnPanic registers fn to run with the recovered value when a subscriber
// panics. Panics inside fn are swallowed.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	bus.hooks.mu.Lock()
	defer bus.hooks.mu.Unlock()
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
}

// send enqueues without blocking.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range snapshot(&bus.hooks.mu, bus.hooks.onPublish) {
			fn(event, payload)
		}
	default:
		for _, fn := range snapshot(&bus.hooks.mu, bus.hooks.onDrop) {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range snapshot(&bus.hooks.mu, bus.hooks.onPanic) {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}

// snapshot copies fns under mu so callbacks run without the lock held.
func snapshot[T any](mu *sync.RWMutex, fns []T) []T {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]T, len(fns))
	copy(out, fns)
	return out
}
