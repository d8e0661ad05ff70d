package env

import "testing"

func TestOS_Lookup(t *testing.T) {
	t.Setenv("MXWEB_TEST_VAR", "from-os")

	value, ok := OS().Lookup("MXWEB_TEST_VAR")
	if !ok || value != "from-os" {
		t.Errorf("Lookup() = (%q, %v), want (from-os, true)", value, ok)
	}

	if _, ok := OS().Lookup("MXWEB_TEST_VAR_DEFINITELY_ABSENT"); ok {
		t.Error("Lookup() ok = true for absent variable")
	}
}

func TestMap_Lookup(t *testing.T) {
	src := Map(map[string]string{"A": "1", "EMPTY": ""})

	if value, ok := src.Lookup("A"); !ok || value != "1" {
		t.Errorf("Lookup(A) = (%q, %v), want (1, true)", value, ok)
	}
	// Empty but set is still present.
	if value, ok := src.Lookup("EMPTY"); !ok || value != "" {
		t.Errorf("Lookup(EMPTY) = (%q, %v), want (\"\", true)", value, ok)
	}
	if _, ok := src.Lookup("B"); ok {
		t.Error("Lookup(B) ok = true, want false")
	}
}

func TestMulti_FirstHitWins(t *testing.T) {
	src := Multi(
		nil,
		Map(map[string]string{"A": "first"}),
		Map(map[string]string{"A": "second", "B": "only"}),
	)

	if value, _ := src.Lookup("A"); value != "first" {
		t.Errorf("Lookup(A) = %q, want first", value)
	}
	if value, _ := src.Lookup("B"); value != "only" {
		t.Errorf("Lookup(B) = %q, want only", value)
	}
	if _, ok := src.Lookup("C"); ok {
		t.Error("Lookup(C) ok = true, want false")
	}
}
