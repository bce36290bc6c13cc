// Package store holds the game's single authoritative state record. State is
// replaced wholesale by a pure reducer on every dispatch and listeners are
// notified synchronously afterwards.
package store

import (
	"log"
)

// Reducer computes the next state. It must not mutate prev and must return
// prev itself for actions it does not handle. A nil prev means "no state
// yet" and should produce the default state.
type Reducer func(prev *State, a Action) *State

// Listener is notified after each dispatch. It receives no arguments and
// re-reads state through State.
type Listener func()

type listenerEntry struct {
	id int
	fn Listener
}

// Store is a single-writer state container.
type Store struct {
	reducer   Reducer
	state     *State
	listeners []listenerEntry
	nextID    int
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger logs every dispatched action and the resulting phase.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a store and dispatches an initial no-op action so the default
// state is materialised.
func New(r Reducer, opts ...Option) *Store {
	s := &Store{reducer: r}
	for _, o := range opts {
		o(s)
	}
	s.Dispatch(initAction{})
	return s
}

// NewGame creates a store driven by the game reducer.
func NewGame(opts ...Option) *Store {
	return New(Reduce, opts...)
}

// Dispatch applies a, replaces the state and then calls every listener in
// registration order.
func (s *Store) Dispatch(a Action) {
	s.state = s.reducer(s.state, a)
	if s.logger != nil {
		s.logger.Printf("store: %s -> phase=%s score=%d", a.Type(), s.state.Phase, s.state.Score)
	}

	// Snapshot so listeners that unsubscribe during notification don't skip peers.
	ls := make([]listenerEntry, len(s.listeners))
	copy(ls, s.listeners)
	for _, l := range ls {
		l.fn()
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	return *s.state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})
	return func() {
		kept := s.listeners[:0]
		for _, e := range s.listeners {
			if e.id != id {
				kept = append(kept, e)
			}
		}
		s.listeners = kept
	}
}
