// Package screen holds the per-screen view state of the portal. Each screen
// owns its own copy of gateway data; nothing is shared or cached between them.
package screen

import (
	"context"
	"errors"
	"loan-portal/internal/pkg/apperrors"
	"sync"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseRefreshing Phase = "refreshing"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
	PhaseNotFound   Phase = "not_found"
)

type NotificationKind string

const (
	KindError   NotificationKind = "error"
	KindSuccess NotificationKind = "success"
)

// Notification is the blocking message a client shows after a cycle ends.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Field   string           `json:"field,omitempty"`
}

func errorNotification(title, message string) Notification {
	return Notification{Kind: KindError, Title: title, Message: message}
}

type State[T any] struct {
	Phase        Phase         `json:"state"`
	Data         T             `json:"data"`
	Notification *Notification `json:"notification,omitempty"`
}

func (s State[T]) Loading() bool {
	return s.Phase == PhaseLoading
}

func (s State[T]) Refreshing() bool {
	return s.Phase == PhaseRefreshing
}

// Cycle describes one fetch of a screen.
type Cycle[T any] struct {
	Refresh bool
	Fetch   func(ctx context.Context) (T, error)
	// Failure is shown for any error other than a not-found result.
	Failure Notification
	// Success optionally builds a notification from the fetched data.
	Success func(T) *Notification
}

// Controller serializes fetch cycles and publishes every state transition to
// its observers.
type Controller[T any] struct {
	cycle     sync.Mutex
	mu        sync.RWMutex
	state     State[T]
	observers []func(State[T])
}

func NewController[T any]() *Controller[T] {
	return &Controller[T]{state: State[T]{Phase: PhaseIdle}}
}

func (c *Controller[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe registers fn for every later transition. fn runs synchronously
// and must not call back into the controller.
func (c *Controller[T]) Subscribe(fn func(State[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Run executes cycle. Held data survives a failed cycle. A fetch error
// matching apperrors.ErrNotFound ends in PhaseNotFound and is not returned.
func (c *Controller[T]) Run(ctx context.Context, cycle Cycle[T]) error {
	c.cycle.Lock()
	defer c.cycle.Unlock()

	phase := PhaseLoading
	if cycle.Refresh {
		phase = PhaseRefreshing
	}
	c.update(func(s *State[T]) {
		s.Phase = phase
		s.Notification = nil
	})

	data, err := cycle.Fetch(ctx)
	switch {
	case err == nil:
		var note *Notification
		if cycle.Success != nil {
			note = cycle.Success(data)
		}
		c.update(func(s *State[T]) {
			s.Phase = PhaseReady
			s.Data = data
			s.Notification = note
		})
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		var zero T
		c.update(func(s *State[T]) {
			s.Phase = PhaseNotFound
			s.Data = zero
		})
		return nil
	default:
		failure := cycle.Failure
		c.update(func(s *State[T]) {
			s.Phase = PhaseFailed
			s.Notification = &failure
		})
		return err
	}
}

// Reject ends an interaction before any request is sent.
func (c *Controller[T]) Reject(note Notification) {
	c.update(func(s *State[T]) {
		s.Phase = PhaseFailed
		s.Notification = &note
	})
}

func (c *Controller[T]) update(fn func(*State[T])) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	observers := append([]func(State[T]){}, c.observers...)
	c.mu.Unlock()

	for _, o := range observers {
		o(snapshot)
	}
}
