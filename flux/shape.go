package flux

// IsRecognized reports whether v is one of the shapes the engine knows how
// to look inside: a record (*Object), a sequence ([]any), or a façade over
// either. Everything else — including a nil interface, a primitive, or a
// struct with its own method set such as a carbon.Carbon or a
// decimal.Decimal — is an opaque leaf the engine never traverses into.
func IsRecognized(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case *Object, []any, *Facade:
		return true
	default:
		return false
	}
}

// IsFacade reports whether v is a façade.
func IsFacade(v any) bool {
	_, ok := v.(*Facade)
	return ok
}

// IsSequence reports whether v is a sequence shape: a raw []any, or a
// façade wrapping one.
func IsSequence(v any) bool {
	switch t := v.(type) {
	case []any:
		return true
	case *Facade:
		_, ok := t.source.([]any)
		return ok
	default:
		return false
	}
}

// IsRecord reports whether v is a record shape: a raw *Object, or a façade
// wrapping one.
func IsRecord(v any) bool {
	switch t := v.(type) {
	case *Object:
		return true
	case *Facade:
		_, ok := t.source.(*Object)
		return ok
	default:
		return false
	}
}

// SourceOf returns the underlying value a façade wraps, or v itself if v is
// not a façade. It never allocates and never copies.
func SourceOf(v any) any {
	if f, ok := v.(*Facade); ok {
		return f.source
	}
	return v
}
