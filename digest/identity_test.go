package digest

import "testing"

func TestIdenticalSameSlicePointer(t *testing.T) {
	s := []any{1, 2, 3}
	if !Identical(s, s) {
		t.Fatalf("Identical(s, s) = false, want true")
	}
}

func TestIdenticalDifferentSlicesSameContent(t *testing.T) {
	a := []any{1, 2, 3}
	b := []any{1, 2, 3}
	if Identical(a, b) {
		t.Fatalf("Identical(a, b) = true for two distinct slice allocations, want false")
	}
}

func TestIdenticalComparableLeaves(t *testing.T) {
	if !Identical("hello", "hello") {
		t.Fatalf(`Identical("hello", "hello") = false, want true`)
	}
	if !Identical(42, 42) {
		t.Fatalf("Identical(42, 42) = false, want true")
	}
	if Identical(42, 43) {
		t.Fatalf("Identical(42, 43) = true, want false")
	}
}

func TestIdenticalNilHandling(t *testing.T) {
	if !Identical(nil, nil) {
		t.Fatalf("Identical(nil, nil) = false, want true")
	}
	if Identical(nil, 1) {
		t.Fatalf("Identical(nil, 1) = true, want false")
	}
	var s []any
	if Identical(s, []any{}) {
		t.Fatalf("Identical(nil slice, empty slice) = true, want false")
	}
}

func TestIdenticalMapPointers(t *testing.T) {
	m := map[string]int{"a": 1}
	if !Identical(m, m) {
		t.Fatalf("Identical(m, m) = false, want true")
	}
	m2 := map[string]int{"a": 1}
	if Identical(m, m2) {
		t.Fatalf("Identical(m, m2) = true for distinct map allocations, want false")
	}
}

func TestIdenticalUncomparableTypesDoNotPanic(t *testing.T) {
	type holder struct{ m map[string]int }
	a := holder{m: map[string]int{"x": 1}}
	b := holder{m: map[string]int{"x": 1}}
	if Identical(a, b) {
		t.Fatalf("Identical(a, b) = true for distinct uncomparable-field structs, want false")
	}
}
