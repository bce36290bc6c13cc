// Package pubsub is a synchronous, in-process publish/subscribe bus used to
// decouple the game's controllers from one another.
package pubsub

// Handler receives the payload passed to Publish. The payload may be nil.
type Handler func(payload any)

type subscription struct {
	event   string
	handler Handler
}

// Bus is an ordered registry of event handlers.
//
// A Bus is constructed explicitly and handed to every component that needs
// it; there is no process-wide registry. Handlers live as long as the Bus.
//
// Publish does not isolate handlers from one another: a handler that panics
// unwinds through Publish and the remaining handlers for that call are not
// invoked.
type Bus struct {
	subs []subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers h for the exact event name. Handlers for the same event
// are invoked in the order they were registered. Receivers are captured by the
// handler itself (a closure or method value).
func (b *Bus) Subscribe(event string, h Handler) {
	if h == nil {
		return
	}
	b.subs = append(b.subs, subscription{event: event, handler: h})
}

// Publish synchronously invokes every handler registered for event.
// Handlers registered while a publish is in progress are not called by it.
func (b *Bus) Publish(event string, payload any) {
	subs := b.subs[:len(b.subs):len(b.subs)]
	for _, s := range subs {
		if s.event == event {
			s.handler(payload)
		}
	}
}

// Subscribers returns how many handlers are registered for event.
func (b *Bus) Subscribers(event string) int {
	n := 0
	for _, s := range b.subs {
		if s.event == event {
			n++
		}
	}
	return n
}
