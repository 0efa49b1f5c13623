package registry

import (
	"testing"

	"github.com/pixielity/flux"
	"github.com/pixielity/flux/store"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := New()
	s := store.New(flux.ObjectOf("a", 1), flux.Options{})

	if err := r.Register("main", s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := r.Lookup("main")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != s {
		t.Fatalf("Lookup(main) returned a different store instance")
	}
}

func TestRegistryLookupMissingReturnsError(t *testing.T) {
	r := New()
	if _, err := r.Lookup("missing"); err == nil {
		t.Fatalf("Lookup(missing) = nil error, want an error")
	}
}

func TestRegistryRegisterRejectsEmptyNameOrNilStore(t *testing.T) {
	r := New()
	s := store.New(flux.ObjectOf("a", 1), flux.Options{})

	if err := r.Register("", s); err == nil {
		t.Fatalf("Register(\"\", s) = nil error, want an error")
	}
	if err := r.Register("x", nil); err == nil {
		t.Fatalf("Register(x, nil) = nil error, want an error")
	}
}

func TestRegistryForgetRemovesEntry(t *testing.T) {
	r := New()
	s := store.New(flux.ObjectOf("a", 1), flux.Options{})
	if err := r.Register("main", s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r.Forget("main")
	if r.Has("main") {
		t.Fatalf("Has(main) = true after Forget")
	}
}

func TestRegistryStatisticsCountsLookups(t *testing.T) {
	r := New()
	s := store.New(flux.ObjectOf("a", 1), flux.Options{})
	if err := r.Register("main", s); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Lookup("main"); err != nil {
			t.Fatalf("Lookup: %v", err)
		}
	}

	stats := r.Statistics()
	if stats.TotalLookups != 3 {
		t.Fatalf("TotalLookups = %d, want 3", stats.TotalLookups)
	}
	if len(stats.MostLooked) != 1 || stats.MostLooked[0].Name != "main" || stats.MostLooked[0].Count != 3 {
		t.Fatalf("MostLooked = %v, want [{main 3}]", stats.MostLooked)
	}
}

func TestRegistrySwapStoreRestoresPrevious(t *testing.T) {
	r := New()
	original := store.New(flux.ObjectOf("who", "original"), flux.Options{})
	replacement := store.New(flux.ObjectOf("who", "replacement"), flux.Options{})
	if err := r.Register("main", original); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var seenDuringSwap *store.Store
	if err := r.SwapStore("main", replacement, func() {
		seenDuringSwap, _ = r.Lookup("main")
	}); err != nil {
		t.Fatalf("SwapStore: %v", err)
	}
	if seenDuringSwap != replacement {
		t.Fatalf("Lookup during swap returned the original store, not the replacement")
	}

	after, err := r.Lookup("main")
	if err != nil {
		t.Fatalf("Lookup after swap: %v", err)
	}
	if after != original {
		t.Fatalf("Lookup after swap returned %v, want the restored original", after)
	}
}

func TestRegistryNamesSortedDeterministic(t *testing.T) {
	r := New()
	s := store.New(flux.ObjectOf("a", 1), flux.Options{})
	for _, name := range []string{"zeta", "alpha", "mu"} {
		if err := r.Register(name, s); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	got := r.Names()
	want := []string{"alpha", "mu", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}
