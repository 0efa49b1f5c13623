package flux

import (
	"github.com/pixielity/flux/digest"
	"github.com/pixielity/flux/fluxlog"
)

// Visitor is invoked once per façade reached by Traverse. pathValues is the
// sequence of containers from root to facade inclusive (façades and any
// plain intermediates passed through); pathKeys is the keys taken, one
// shorter. Returning false prunes descent into facade's subtree; in
// child-first order the return value has no effect, since descent already
// happened by the time the visitor runs.
type Visitor func(facade *Facade, pathValues []any, pathKeys []any) bool

// Traverse walks every façade reachable from root — a façade itself, or a
// plain recognized container that may hold façades nested inside it — in
// parent-first order by default, or child-first when depthFirst is true.
// Cycles (through either patches or plain-object structure) are guarded by
// scanning the current path, not a global visited set: a value is skipped
// once it reappears along the current path, not once it has been seen
// anywhere in the walk.
//
// log is an optional debug logger (nil is a no-op, per fluxlog's nil-safe
// contract): when set, every visited façade and pruned/cyclic skip is
// logged with its path rendered via digest.Path, useful for tracing why a
// snapshot came out the way it did.
func Traverse(root any, visitor Visitor, depthFirst bool, log *fluxlog.Logger) {
	walk(root, nil, nil, visitor, depthFirst, log)
}

func walk(v any, ancestors []any, keys []any, visitor Visitor, depthFirst bool, log *fluxlog.Logger) {
	if !IsRecognized(v) {
		return
	}

	for _, a := range ancestors {
		if digest.Identical(a, v) {
			log.Debug("traverse: cycle detected at %s, skipping", digest.Path(keys).String())
			return
		}
	}

	path := appendAny(ancestors, v)

	if facade, ok := v.(*Facade); ok {
		descend := true
		if !depthFirst {
			logVisit(log, keys)
			descend = visitor(facade, path, keys) != false
			if !descend {
				log.Debug("traverse: visitor pruned descent at %s", digest.Path(keys).String())
			}
		}
		if descend {
			for _, k := range facade.Keys() {
				reachable, ok := facade.reachable(k)
				if !ok {
					continue
				}
				walk(reachable, path, appendAny(keys, k), visitor, depthFirst, log)
			}
		}
		if depthFirst {
			logVisit(log, keys)
			visitor(facade, path, keys)
		}
		return
	}

	// Plain recognized intermediate: descend without visiting it directly.
	for _, k := range plainKeys(v) {
		child := plainGet(v, k)
		walk(child, path, appendAny(keys, k), visitor, depthFirst, log)
	}
}

// reachable implements the reachability priority for key k: a recognized
// patch value first, else a cached child, else nothing. This is what makes
// Traverse follow only the subgraph a façade's own reads and writes have
// already materialized, rather than blindly walking its raw source.
func (f *Facade) reachable(key any) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.patches != nil {
		if pv, ok := f.patches[key]; ok {
			if pv == Tombstone {
				return nil, false
			}
			if IsRecognized(pv) {
				return pv, true
			}
			return nil, false
		}
	}
	if child, ok := f.children[key]; ok {
		return child, true
	}
	return nil, false
}

func plainKeys(v any) []any {
	switch src := v.(type) {
	case *Object:
		keys := src.Keys()
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out
	case []any:
		out := make([]any, len(src))
		for i := range src {
			out[i] = i
		}
		return out
	default:
		return nil
	}
}

func plainGet(v any, key any) any {
	switch src := v.(type) {
	case *Object:
		k, _ := key.(string)
		val, _ := src.Get(k)
		return val
	case []any:
		idx, _ := key.(int)
		if idx < 0 || idx >= len(src) {
			return nil
		}
		return src[idx]
	default:
		return nil
	}
}

func appendAny(list []any, v any) []any {
	next := make([]any, len(list)+1)
	copy(next, list)
	next[len(list)] = v
	return next
}

// logVisit emits a debug line naming the façade being visited, both as a
// dotted path ("foo.bar[2]") and as the StudlyCase accessor name a
// generated binding for this path would use ("FooBarAt2"). Guarded by
// IsDebugEnabled so the path-rendering and case-conversion work is skipped
// entirely outside debug mode.
func logVisit(log *fluxlog.Logger, keys []any) {
	if !log.IsDebugEnabled() {
		return
	}
	p := digest.Path(keys)
	log.Debug("traverse: visiting %s (%s)", p.String(), p.Humanized())
}
