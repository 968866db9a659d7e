// Package session keeps one calculator state per client session.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/observability"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	state   engine.State
	touched time.Time
}

// Store is a concurrency-safe map of session id to calculator state.
// Updates to a session run under the store lock, so the intents of one
// calculator are applied strictly one after another.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create starts a cleared calculator and returns its id.
func (s *Store) Create() (string, engine.State) {
	id := uuid.NewString()
	state := engine.NewState()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &entry{state: state, touched: s.now()}
	return id, state
}

func (s *Store) Get(id string) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return engine.State{}, ErrNotFound
	}
	return e.state, nil
}

// Apply runs fn on the current state of id and stores its result. When fn
// returns an error nothing is stored and the previous state is returned
// with the error.
func (s *Store) Apply(id string, fn func(engine.State) (engine.State, error)) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return engine.State{}, ErrNotFound
	}

	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}

	e.state = next
	e.touched = s.now()
	return next, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions untouched for longer than maxIdle and returns how
// many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.sessions {
		if e.touched.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				observability.Logger.Info("expired idle sessions",
					zap.Int("removed", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
