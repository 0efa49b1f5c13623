package flux

import "github.com/pixielity/flux/digest"

// Snapshot folds every patch reachable from root into a new immutable tree,
// sharing structure with the base wherever nothing changed. When rebaseOnto
// is omitted, the base defaults to root's source (for a façade) or root
// itself (for a plain value). When rebaseOnto is given, this is a rebase:
// sequences reached anywhere in the walk are taken whole from root's view
// rather than interleaved into rebaseOnto's corresponding slot.
func Snapshot(root any, rebaseOnto ...any) any {
	if !IsRecognized(root) {
		return root
	}

	var base any
	rebasing := false
	if len(rebaseOnto) > 0 {
		base = rebaseOnto[0]
		rebasing = !digest.Identical(base, SourceOf(root))
	} else {
		base = SourceOf(root)
	}

	result, _ := snapshotValue(root, base, rebasing)
	return result
}

// snapshotValue resolves v (a façade, a plain recognized container, or a
// leaf) against base, returning the resolved value and whether it differs
// from base by identity.
func snapshotValue(v any, base any, rebasing bool) (any, bool) {
	if facade, ok := v.(*Facade); ok {
		return foldAgainstBase(facade, base, rebasing)
	}
	if IsRecognized(v) {
		result := materializePlain(v, rebasing)
		return result, !digest.Identical(result, base)
	}
	return v, !digest.Identical(v, base)
}

// materialize resolves v against its own natural base (a façade's own
// source, or a plain container's own content), used wherever there is no
// external base slot to interleave into: a façade written as a patch value
// elsewhere, or a façade discovered nested inside a freshly constructed
// plain literal.
func materialize(v any, rebasing bool) any {
	if facade, ok := v.(*Facade); ok {
		result, _ := foldAgainstBase(facade, facade.source, rebasing)
		return result
	}
	if IsRecognized(v) {
		return materializePlain(v, rebasing)
	}
	return v
}

// materializePlain rebuilds a plain recognized container only if it
// actually contains a façade somewhere inside it (façade pointers must
// never leak into a snapshot result); otherwise the container is returned
// verbatim, sharing structure as-is.
func materializePlain(v any, rebasing bool) any {
	if !containsFacade(v) {
		return v
	}
	switch src := v.(type) {
	case *Object:
		clone := NewObject()
		for _, k := range src.Keys() {
			val, _ := src.Get(k)
			clone.Set(k, materialize(val, rebasing))
		}
		return clone
	case []any:
		clone := make([]any, len(src))
		for i, val := range src {
			clone[i] = materialize(val, rebasing)
		}
		return clone
	default:
		return v
	}
}

func containsFacade(v any) bool {
	switch src := v.(type) {
	case *Facade:
		return true
	case *Object:
		for _, k := range src.Keys() {
			val, _ := src.Get(k)
			if IsFacade(val) || (IsRecognized(val) && containsFacade(val)) {
				return true
			}
		}
		return false
	case []any:
		for _, val := range src {
			if IsFacade(val) || (IsRecognized(val) && containsFacade(val)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// kindMatches reports whether base is a recognized container of the same
// kind (record vs. sequence) as facade's own source.
func kindMatches(f *Facade, base any) bool {
	switch f.source.(type) {
	case *Object:
		_, ok := base.(*Object)
		return ok
	case []any:
		_, ok := base.([]any)
		return ok
	default:
		return false
	}
}

// foldAgainstBase is the snapshot algorithm's core: a bottom-up clone-on-write
// fold of f's patches (and any nested, unpatched-but-cached children) onto
// base. It returns the resolved value and whether it differs from base by
// identity.
func foldAgainstBase(f *Facade, base any, rebasing bool) (any, bool) {
	effectiveBase := base

	arrayException := f.isSequenceSource() && rebasing
	if arrayException || !kindMatches(f, base) {
		effectiveBase = f.source
	}

	result := foldInto(f, effectiveBase, rebasing)
	return result, !digest.Identical(result, base)
}

// foldInto applies f's own patches (and recursively, any cached children's
// changes) onto effectiveBase, cloning effectiveBase only if some key
// actually differs. It does not itself decide rebase/array-exception
// semantics — the caller (foldAgainstBase) has already picked effectiveBase.
func foldInto(f *Facade, effectiveBase any, rebasing bool) any {
	switch effectiveBase.(type) {
	case *Object:
		return foldRecordInto(f, effectiveBase.(*Object), rebasing)
	case []any:
		return foldSequenceInto(f, effectiveBase.([]any), rebasing)
	default:
		// effectiveBase isn't a usable container at all (e.g. nil, or a
		// foreign leaf where rebase cannot apply): fall back to resolving
		// purely from f's own source.
		if !digest.Identical(effectiveBase, f.source) {
			return foldInto(f, f.source, rebasing)
		}
		return effectiveBase
	}
}

func foldRecordInto(f *Facade, base *Object, rebasing bool) any {
	var clone *Object
	changed := false
	ensureClone := func() {
		if clone == nil {
			clone = base.Clone()
		}
	}

	seen := make(map[string]bool)

	for _, k := range base.Keys() {
		seen[k] = true
		resolveRecordKey(f, k, base, rebasing, ensureClone, &changed, func(v any) {
			clone.Set(k, v)
		}, func() {
			clone.Delete(k)
		})
	}
	for _, k := range f.patchOrder {
		if seen[k] {
			continue
		}
		resolveRecordKey(f, k, base, rebasing, ensureClone, &changed, func(v any) {
			clone.Set(k, v)
		}, func() {
			clone.Delete(k)
		})
	}

	if !changed {
		return base
	}
	return clone
}

// resolveRecordKey resolves a single record key's effective value (from
// patches, or a cached child, or the base itself) and applies it to the
// clone via set/del if it differs from the base's current slot.
func resolveRecordKey(f *Facade, k string, base *Object, rebasing bool, ensureClone func(), changed *bool, set func(any), del func()) {
	baseVal, basePresent := base.Get(k)

	if f.patches != nil {
		if patchVal, ok := f.patches[k]; ok {
			if patchVal == Tombstone {
				if basePresent {
					ensureClone()
					del()
					*changed = true
				}
				return
			}
			if nested, ok := patchVal.(*Facade); ok {
				resolved := materialize(nested, rebasing)
				if !basePresent || !digest.Identical(resolved, baseVal) {
					ensureClone()
					set(resolved)
					*changed = true
				}
				return
			}
			if IsRecognized(patchVal) {
				resolved := materializePlain(patchVal, rebasing)
				if !basePresent || !digest.Identical(resolved, baseVal) {
					ensureClone()
					set(resolved)
					*changed = true
				}
				return
			}
			if !basePresent || !sameValue(patchVal, baseVal) {
				ensureClone()
				set(patchVal)
				*changed = true
			}
			return
		}
	}

	if child, ok := f.children[k]; ok {
		childResult, childChanged := foldAgainstBase(child, baseVal, rebasing)
		if childChanged || !basePresent {
			ensureClone()
			set(childResult)
			*changed = true
		}
		return
	}
}

func foldSequenceInto(f *Facade, base []any, rebasing bool) any {
	var clone []any
	changed := len(base) != f.effectiveLength()
	ensureClone := func() {
		if clone == nil {
			clone = make([]any, len(base))
			copy(clone, base)
		}
	}
	if changed {
		ensureClone()
		target := f.effectiveLength()
		if target < len(clone) {
			clone = clone[:target]
		} else {
			for len(clone) < target {
				clone = append(clone, nil)
			}
		}
	}

	limit := f.effectiveLength()
	for i := 0; i < limit; i++ {
		var baseVal any
		basePresent := i < len(base)
		if basePresent {
			baseVal = base[i]
		}

		if f.patches != nil {
			if patchVal, ok := f.patches[i]; ok {
				if patchVal == Tombstone {
					if basePresent {
						ensureClone()
						if i < len(clone) {
							clone[i] = nil
						}
						changed = true
					}
					continue
				}
				if nested, ok := patchVal.(*Facade); ok {
					resolved := materialize(nested, rebasing)
					if !basePresent || !digest.Identical(resolved, baseVal) {
						ensureClone()
						clone[i] = resolved
						changed = true
					}
					continue
				}
				if IsRecognized(patchVal) {
					resolved := materializePlain(patchVal, rebasing)
					if !basePresent || !digest.Identical(resolved, baseVal) {
						ensureClone()
						clone[i] = resolved
						changed = true
					}
					continue
				}
				if !basePresent || !sameValue(patchVal, baseVal) {
					ensureClone()
					clone[i] = patchVal
					changed = true
				}
				continue
			}
		}

		if child, ok := f.children[i]; ok {
			childResult, childChanged := foldAgainstBase(child, baseVal, rebasing)
			if childChanged || !basePresent {
				ensureClone()
				clone[i] = childResult
				changed = true
			}
			continue
		}

		// Neither patched nor read through a child: if base is shorter
		// than f's effective length, the slot still needs a value (from
		// f's own source) to fill the clone.
		if !basePresent {
			v, _ := f.rawOwn(i)
			ensureClone()
			clone[i] = v
			changed = true
		}
	}

	if !changed {
		return base
	}
	return clone
}

// sameValue compares two leaf patch values for "no effective change"
// purposes. digest.Identical already covers both reference identity for
// container-shaped values and safe equality for ordinary comparables.
func sameValue(a, b any) bool {
	return digest.Identical(a, b)
}
