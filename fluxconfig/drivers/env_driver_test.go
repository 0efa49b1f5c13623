package drivers

import "testing"

func TestEnvDriverGetAllReadsPrefixedVars(t *testing.T) {
	t.Setenv("FLUX_LOG_LEVEL", "debug")
	t.Setenv("FLUX_REFERENCE_CHECK", "true")
	t.Setenv("OTHER_VAR", "ignored")

	d := NewEnvDriver(EnvDriverOptions{Prefix: "FLUX_"})
	if err := d.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	all, err := d.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	if all["log_level"] != "debug" {
		t.Fatalf("GetAll()[log_level] = %v, want debug", all["log_level"])
	}
	if all["reference_check"] != "true" {
		t.Fatalf("GetAll()[reference_check] = %v, want true", all["reference_check"])
	}
	if _, ok := all["other_var"]; ok {
		t.Fatalf("GetAll() picked up an unprefixed variable")
	}
}

func TestEnvDriverDefaultsPrefix(t *testing.T) {
	d := NewEnvDriver(EnvDriverOptions{})
	t.Setenv("FLUX_LOG_LEVEL", "warn")
	all, err := d.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if all["log_level"] != "warn" {
		t.Fatalf("GetAll()[log_level] = %v, want warn (default FLUX_ prefix)", all["log_level"])
	}
}
