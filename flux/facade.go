package flux

import (
	"sync"

	"github.com/pixielity/flux/digest"
)

// LengthKey is the pseudo-key a sequence-kind façade uses for its length:
// reads and writes go through patches like any other key, but it is never
// part of Keys() enumeration and can never be deleted.
const LengthKey = "length"

// Options configures a façade graph. ReferenceCheck, when enabled, makes a
// write that restores a slot to its original value a no-op rather than
// recording a redundant patch — the only mechanism that keeps
// scramble-then-unscramble mutation sequences (push;pop, splice;splice)
// snapshot-identical to their source.
type Options struct {
	ReferenceCheck bool
}

// Accessor lets a custom record/sequence source define a computed getter at
// a given key. Source types that don't implement it (the built-in *Object
// and []any never do) simply skip this step.
type Accessor interface {
	FluxGetAt(f *Facade, key any) (value any, defined bool)
}

// Setter lets a custom source define a computed setter at a given key,
// taking full responsibility for the write (no patch is recorded for it).
type Setter interface {
	FluxSetAt(f *Facade, key any, value any) (handled bool, err error)
}

// Facade is a recording handle around a recognized container: source is
// read-only from the engine's perspective, and every write or delete lands
// in patches instead of mutating source. Reads of a recognized child slot
// lazily materialize a child façade, cached in children so a second read of
// the same slot returns the same façade instance.
type Facade struct {
	mu sync.Mutex

	source   any // *Object or []any — never another *Facade
	patches  map[any]any
	// patchOrder preserves insertion order of record keys introduced purely
	// by a patch (i.e. absent from source); source's own key order already
	// comes from Object.Keys().
	patchOrder []string
	children   map[any]*Facade

	origin  *Facade
	options Options
	revoked bool
}

// Wrap creates a root façade over value. Wrapping a façade is idempotent:
// it returns the same façade unchanged.
func Wrap(value any, options Options) *Facade {
	if f, ok := value.(*Facade); ok {
		return f
	}
	f := &Facade{source: value, options: options}
	f.origin = f
	return f
}

// newChild builds a façade sharing root's origin, used for every lazily
// materialized child slot.
func newChild(source any, root *Facade, options Options) *Facade {
	c := &Facade{source: source, origin: root, options: options}
	return c
}

// Origin returns the root façade this façade was derived from.
func (f *Facade) Origin() *Facade { return f.origin }

// Options returns the façade's options.
func (f *Facade) Options() Options { return f.options }

// Source returns the underlying container this façade wraps. Equivalent to
// SourceOf(f), provided as a method for convenience.
func (f *Facade) Source() any { return f.source }

// Revoked reports whether the façade has had its bookkeeping discarded.
func (f *Facade) Revoked() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked
}

// Revoke discards the façade's patches and children. A revoked façade
// remains readable (it degrades to reading straight through to source) but
// is no longer a useful recording surface; the store revokes the façade it
// handed to a mutator once that mutator's snapshot has been taken.
func (f *Facade) Revoke() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = true
	f.patches = nil
	f.patchOrder = nil
	f.children = nil
}

// isSequenceSource reports whether the façade wraps a sequence.
func (f *Facade) isSequenceSource() bool {
	_, ok := f.source.([]any)
	return ok
}

// effectiveLength returns the sequence's current length: the length patch
// if one exists, else len(source).
func (f *Facade) effectiveLength() int {
	seq, _ := f.source.([]any)
	if f.patches != nil {
		if v, ok := f.patches[LengthKey]; ok {
			if n, ok := v.(int); ok {
				return n
			}
		}
	}
	return len(seq)
}

// hasOwn reports whether key is an own key of source, ignoring patches.
func (f *Facade) hasOwn(key any) bool {
	switch src := f.source.(type) {
	case *Object:
		k, ok := key.(string)
		return ok && src.Has(k)
	case []any:
		idx, ok := key.(int)
		return ok && idx >= 0 && idx < len(src)
	default:
		return false
	}
}

// rawOwn returns the raw source value at key, ignoring patches.
func (f *Facade) rawOwn(key any) (any, bool) {
	switch src := f.source.(type) {
	case *Object:
		k, ok := key.(string)
		if !ok {
			return nil, false
		}
		return src.Get(k)
	case []any:
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= len(src) {
			return nil, false
		}
		return src[idx], true
	default:
		return nil, false
	}
}

// Get reads key, checking the patch map, then a computed accessor, then
// source, lazily materializing a child façade for any recognized value.
func (f *Facade) Get(key any) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.patches != nil {
		if patchVal, ok := f.patches[key]; ok {
			if patchVal == Tombstone {
				return nil, false
			}
			return patchVal, true
		}
	}

	if accessor, ok := f.source.(Accessor); ok {
		if v, defined := accessor.FluxGetAt(f, key); defined {
			return v, true
		}
	}

	if f.isSequenceSource() {
		if key == LengthKey {
			return f.effectiveLength(), true
		}
		if idx, ok := key.(int); ok && idx >= f.effectiveLength() {
			return nil, false
		}
	}

	v, present := f.rawOwn(key)
	if !present {
		return nil, false
	}

	if child, ok := f.children[key]; ok && digest.Identical(child.source, v) {
		return child, true
	}

	if IsRecognized(v) {
		c := newChild(v, f.origin, f.options)
		if f.children == nil {
			f.children = make(map[any]*Facade)
		}
		f.children[key] = c
		return c, true
	}

	return v, true
}

// Has reports whether key is present, accounting for patches (including
// tombstones) and the synthetic length key on a sequence source.
func (f *Facade) Has(key any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if key == LengthKey && f.isSequenceSource() {
		return true
	}
	if f.patches != nil {
		if patchVal, ok := f.patches[key]; ok {
			return patchVal != Tombstone
		}
	}
	if idx, ok := key.(int); ok && f.isSequenceSource() && idx >= f.effectiveLength() {
		return false
	}
	return f.hasOwn(key)
}

// Set records a patch for key, or hands off to a computed setter or the
// sequence length special-case when applicable.
func (f *Facade) Set(key any, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if child, ok := f.children[key]; ok {
		if asFacade, ok := value.(*Facade); ok && asFacade == child {
			if f.patches != nil {
				delete(f.patches, key)
			}
			return nil
		}
	}

	if f.options.ReferenceCheck {
		if _, isFacade := value.(*Facade); !isFacade {
			if raw, present := f.rawOwn(key); present && digest.Identical(raw, value) {
				if f.patches != nil {
					delete(f.patches, key)
				}
				return nil
			}
		}
	}

	if setter, ok := f.source.(Setter); ok {
		if handled, err := setter.FluxSetAt(f, key, value); handled {
			return err
		}
	}

	if f.isSequenceSource() && key == LengthKey {
		newLen, ok := value.(int)
		if !ok || newLen < 0 {
			return &InvariantViolationError{Invariant: "sequence length", Detail: "length must be a non-negative int"}
		}
		f.ensurePatches()
		f.patches[LengthKey] = newLen
		for k := range f.patches {
			if idx, ok := k.(int); ok && idx >= newLen {
				delete(f.patches, k)
				delete(f.children, k)
			}
		}
		return nil
	}

	f.ensurePatches()
	f.patches[key] = value
	if recordKey, ok := key.(string); ok {
		if _, isObjectSource := f.source.(*Object); isObjectSource {
			if !f.hasOwn(key) && !containsString(f.patchOrder, recordKey) {
				f.patchOrder = append(f.patchOrder, recordKey)
			}
		}
	}
	return nil
}

// Delete removes key: records a tombstone patch if source owns the key,
// otherwise just clears any existing patch for it.
func (f *Facade) Delete(key any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if key == LengthKey && f.isSequenceSource() {
		return &UnsupportedOperationError{Op: "delete", Detail: "sequence length is not configurable"}
	}

	if !f.hasOwn(key) {
		if f.patches != nil {
			delete(f.patches, key)
		}
		if recordKey, ok := key.(string); ok {
			f.patchOrder = removeString(f.patchOrder, recordKey)
		}
		return nil
	}

	f.ensurePatches()
	f.patches[key] = Tombstone
	delete(f.children, key)
	return nil
}

// Keys enumerates the façade's current own keys: source's keys with
// patch-introduced additions appended and tombstoned keys removed.
func (f *Facade) Keys() []any {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch src := f.source.(type) {
	case *Object:
		seen := make(map[string]bool, src.Len())
		out := make([]any, 0, src.Len())
		for _, k := range src.Keys() {
			if f.patches != nil {
				if pv, ok := f.patches[k]; ok && pv == Tombstone {
					continue
				}
			}
			out = append(out, k)
			seen[k] = true
		}
		for _, k := range f.patchOrder {
			if seen[k] {
				continue
			}
			if f.patches != nil {
				if pv, ok := f.patches[k]; ok && pv == Tombstone {
					continue
				}
			}
			out = append(out, k)
		}
		return out
	case []any:
		n := f.effectiveLength()
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			if f.patches != nil {
				if pv, ok := f.patches[i]; ok && pv == Tombstone {
					continue
				}
			}
			out = append(out, i)
		}
		return out
	default:
		return nil
	}
}

func (f *Facade) ensurePatches() {
	if f.patches == nil {
		f.patches = make(map[any]any)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
