// Package store implements the thin single-writer shim described by the
// engine's store layer: it serializes mutator invocations against one
// committed value, tracks re-entrancy depth, and fans out subscriber
// notifications once per outermost apply.
package store

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/pixielity/flux"
	"github.com/pixielity/flux/digest"
	"github.com/pixielity/flux/fluxlog"
)

// Mutator receives a root façade over the current state and an apply
// function it may call recursively (for nested commits). Its return value
// is resolved by kind: the façade itself -> fresh snapshot; another
// recognized value -> snapshot(that value); anything else -> returned
// verbatim.
type Mutator func(f *flux.Facade, apply func(Mutator) (any, error)) (any, error)

// Listener is invoked after a commit that produced a change, once the
// re-entrancy depth has returned to zero.
type Listener func(state any)

// Store is a single-writer coordinator around one committed value.
type Store struct {
	mu sync.Mutex

	id      string
	state   any
	options flux.Options
	depth   int
	pending bool

	subs   map[string]Listener
	subSeq []string

	log *fluxlog.Logger
}

// New creates a store with initialState as the first committed value.
func New(initialState any, options flux.Options) *Store {
	return &Store{
		id:      digest.NewID(),
		state:   initialState,
		options: options,
		subs:    make(map[string]Listener),
	}
}

// SetLogger injects a logger; a nil logger (the default) makes logging a
// no-op, per fluxlog's nil-safe contract.
func (s *Store) SetLogger(l *fluxlog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = l
}

// ID returns the store's process-unique instance identifier.
func (s *Store) ID() string { return s.id }

// GetState returns the currently committed value.
func (s *Store) GetState() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers listener and returns an unsubscribe function.
// Each notification starts listeners in registration order, but notify runs
// them concurrently, so the order in which they execute is not defined.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	token := digest.NewID()
	s.subs[token] = listener
	s.subSeq = append(s.subSeq, token)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, token)
		for i, t := range s.subSeq {
			if t == token {
				s.subSeq = append(s.subSeq[:i:i], s.subSeq[i+1:]...)
				break
			}
		}
	}
}

// Apply serializes one mutator invocation against the committed state: it
// wraps the current value in a root façade, runs mutator against it
// (nesting through apply for recursive commits), snapshots the result, and
// fires subscribers once re-entrancy depth returns to zero. Mutator runs to
// completion synchronously; there is no pending/deferred variant — a
// mutator that needs to wait on something does so before returning, the
// same way a callback-based commit would block its caller rather than
// return a future.
func (s *Store) Apply(mutator Mutator) (any, error) {
	s.mu.Lock()
	base := s.state
	// Wrap allocates no patches/children until the first mutation, so
	// wrapping committed state fresh on every Apply call costs nothing to
	// skip for the "nothing changed yet" case.
	f := flux.Wrap(base, s.options)
	s.depth++
	s.mu.Unlock()

	result, err := mutator(f, func(nested Mutator) (any, error) {
		return s.Apply(nested)
	})

	s.mu.Lock()
	s.depth--
	finalDepth := s.depth

	current := s.state
	newState := flux.Snapshot(f, current)
	changed := !digest.Identical(newState, current)
	if changed {
		s.state = newState
		s.pending = true
		s.log.Debug("store %s: committed new state, fingerprint=%s", s.id, digest.Fingerprint(newState))
	}
	fireNow := finalDepth == 0 && s.pending
	if fireNow {
		s.pending = false
	}
	f.Revoke()

	var listeners []Listener
	if fireNow {
		for _, token := range s.subSeq {
			listeners = append(listeners, s.subs[token])
		}
	}
	finalState := s.state
	s.mu.Unlock()

	if fireNow {
		s.notify(listeners, finalState)
	}

	if err != nil {
		return nil, fmt.Errorf("apply: mutator: %w", err)
	}

	switch rv := result.(type) {
	case *flux.Facade:
		if rv == f {
			return newState, nil
		}
		return flux.Snapshot(rv), nil
	default:
		if flux.IsRecognized(result) {
			return flux.Snapshot(result), nil
		}
		return result, nil
	}
}

// notify fans listeners out concurrently via conc.WaitGroup, isolating a
// panicking listener so the rest still run.
func (s *Store) notify(listeners []Listener, state any) {
	var wg conc.WaitGroup
	for _, listener := range listeners {
		listener := listener
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("store %s: subscriber panicked: %v", s.id, r)
				}
			}()
			listener(state)
		})
	}
	wg.Wait()
}
