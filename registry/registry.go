// Package registry provides a named, process-wide lookup of live
// store.Store instances with resolution-count statistics — every
// "service" here is already a concrete *store.Store instance (a store
// wires its own dependencies at construction time), so there is no
// binding/resolve split, only register/lookup.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pixielity/flux/store"
)

// Registry tracks named stores and how often each has been looked up.
type Registry struct {
	mu sync.RWMutex

	stores      map[string]*store.Store
	lookupCount map[string]int
	totalLookup int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		stores:      make(map[string]*store.Store),
		lookupCount: make(map[string]int),
	}
}

// Register binds name to s, replacing any store previously registered under
// that name. A store already exists by the time it is registered here —
// there is no lazy-construction closure to invoke.
func (r *Registry) Register(name string, s *store.Store) error {
	if name == "" {
		return fmt.Errorf("registry: name cannot be empty")
	}
	if s == nil {
		return fmt.Errorf("registry: store cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[name] = s
	return nil
}

// Lookup resolves name to its registered store, counting the lookup.
func (r *Registry) Lookup(name string) (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[name]
	if !ok {
		return nil, fmt.Errorf("registry: no store registered for %q", name)
	}
	r.lookupCount[name]++
	r.totalLookup++
	return s, nil
}

// Has reports whether name is currently registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.stores[name]
	return ok
}

// Forget removes name's registration, if any.
func (r *Registry) Forget(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, name)
	delete(r.lookupCount, name)
}

// Names returns every currently registered name, sorted for deterministic
// output (unlike map iteration order).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered stores.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}

// Stats reports per-store lookup counts and the process-wide total.
type Stats struct {
	TotalStores  int
	TotalLookups int
	MostLooked   []NameCount
}

// NameCount pairs a registered name with its lookup count.
type NameCount struct {
	Name  string
	Count int
}

// Statistics reports registry-wide usage, with the top 5 most-looked-up
// names.
func (r *Registry) Statistics() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make([]NameCount, 0, len(r.lookupCount))
	for name, count := range r.lookupCount {
		counts = append(counts, NameCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}

	return Stats{
		TotalStores:  len(r.stores),
		TotalLookups: r.totalLookup,
		MostLooked:   counts,
	}
}

// SwapStore temporarily replaces name's registered store with replacement
// for the duration of fn, restoring the previous registration (or removing
// the entry entirely if there was none) afterward — lets a test swap in a
// fake store and have it automatically restored.
func (r *Registry) SwapStore(name string, replacement *store.Store, fn func()) error {
	r.mu.Lock()
	previous, had := r.stores[name]
	r.stores[name] = replacement
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if had {
			r.stores[name] = previous
		} else {
			delete(r.stores, name)
		}
		r.mu.Unlock()
	}()

	fn()
	return nil
}

// Default is the process-wide registry instance: a single shared registry
// most of the process's code resolves stores from.
var Default = New()
