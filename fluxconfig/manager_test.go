package fluxconfig

import "testing"

func TestNewManagerDefaultsToFileDriver(t *testing.T) {
	m, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager(\"\"): %v", err)
	}
	if m.driverName != "file" {
		t.Fatalf("driverName = %q, want file", m.driverName)
	}
}

func TestNewManagerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewManager("nonsense"); err == nil {
		t.Fatalf("NewManager(nonsense) = nil error, want an error")
	}
}

func TestManagerMemoryDriverLoadsDefaultsWhenEmpty(t *testing.T) {
	m, err := NewManager("memory")
	if err != nil {
		t.Fatalf("NewManager(memory): %v", err)
	}
	settings, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings != Default() {
		t.Fatalf("Load() of an empty memory driver = %+v, want defaults %+v", settings, Default())
	}
}
