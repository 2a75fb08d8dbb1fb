package state

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store owns the current AppState. Dispatch must be called from a single
// goroutine; State may be read from anywhere.
type Store struct {
	mu      sync.RWMutex
	state   *AppState
	reducer Reducer
	logger  *slog.Logger

	subscribers []subscriber
	nextSubID   uint64
	notifying   atomic.Bool
}

type subscriber struct {
	id uint64
	fn func(*AppState)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReducer replaces the default reducer.
func WithReducer(r Reducer) Option {
	return func(s *Store) {
		s.reducer = r
	}
}

// NewStore creates a store holding initial.
func NewStore(initial *AppState, opts ...Option) *Store {
	s := &Store{
		state:  initial,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state. The returned value must not be modified.
func (s *Store) State() *AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces action against the current state, publishes the result
// and notifies subscribers. Non-fatal conditions (nothing to undo, an
// out-of-range index) are logged and returned; the state is still replaced.
func (s *Store) Dispatch(action Action) error {
	if s.notifying.Load() {
		return ErrReentrantDispatch
	}

	s.mu.Lock()
	next, err := s.reducer.Reduce(s.state, action)
	s.state = next
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	name := ActionName(action)
	_, cursor := next.History.PeekCurrent()
	switch {
	case err == nil:
		s.logger.Debug("dispatched",
			"action", name,
			"entries", next.Entries.Len(),
			"history", next.History.Len(),
			"cursor", cursor,
			"synchronized", next.Synchronized())
	case errors.Is(err, ErrUnknownAction):
		s.logger.Error("dispatch failed", "action", name, "error", err)
	default:
		s.logger.Warn("dispatch rejected", "action", name, "error", err)
	}

	s.notifying.Store(true)
	defer s.notifying.Store(false)
	for _, sub := range subs {
		sub.fn(next)
	}

	return err
}

// Subscribe registers fn to be called with the new state after every
// dispatch. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(*AppState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
