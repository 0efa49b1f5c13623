package digest

import "reflect"

// Identical reports whether a and b refer to the same underlying storage:
// the same map header, the same slice header (pointer, not contents), the
// same pointer, or — for everything else — the same comparable value.
//
// Go gives no operator for this across mixed map/slice/pointer/scalar
// inputs, so identity checks throughout flux funnel through here rather
// than re-deriving reflect.Value plumbing at each call site.
func Identical(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)

	if va.Kind() != vb.Kind() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if va.Kind() == reflect.Slice {
			if va.IsNil() || vb.IsNil() {
				return va.IsNil() && vb.IsNil()
			}
			return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
		}
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	default:
		if !va.Type().Comparable() || !vb.Type().Comparable() {
			return false
		}
		if va.Type() != vb.Type() {
			return false
		}
		defer func() {
			if recover() != nil {
				same = false
			}
		}()
		return a == b
	}
}
