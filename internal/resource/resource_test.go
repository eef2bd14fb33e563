package resource

import "testing"

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("parse %q: %v", k, err)
		}
		if got != k {
			t.Fatalf("parse %q: got %v", k, got)
		}
	}
	if _, err := ParseKind("gold"); err == nil {
		t.Fatal("expected error for unknown resource")
	}
}

func TestVectorNormalize(t *testing.T) {
	v := Vector{2, 1, 1}.Normalize()
	if got := v.Sum(); got < 0.999999 || got > 1.000001 {
		t.Fatalf("normalized sum = %g, want 1", got)
	}
	if v[Wood] != 0.5 {
		t.Fatalf("wood share = %g, want 0.5", v[Wood])
	}

	// No positive mass falls back to uniform.
	u := Vector{0, 0, 0}.Normalize()
	for _, k := range Kinds {
		if u[k] != 1.0/NumKinds {
			t.Fatalf("uniform fallback: %v = %g", k, u[k])
		}
	}

	// Negative components are treated as zero.
	n := Vector{-5, 1, 1}.Normalize()
	if n[Wood] != 0 {
		t.Fatalf("negative component kept mass: %g", n[Wood])
	}
}

func TestVectorClamp(t *testing.T) {
	v := Vector{-1, 5, 20}.Clamp(0, 10)
	if v[Wood] != 0 || v[Livestock] != 5 || v[Stone] != 10 {
		t.Fatalf("clamp = %v", v)
	}
}

func TestMaxKindCanonicalTieBreak(t *testing.T) {
	// All equal: earliest canonical kind wins.
	if got := (Vector{1, 1, 1}).MaxKind(); got != Wood {
		t.Fatalf("tie should go to wood, got %v", got)
	}
	if got := (Vector{0, 2, 2}).MaxKind(); got != Livestock {
		t.Fatalf("tie should go to livestock, got %v", got)
	}
	if got := (Vector{1, 1, 1}).MinKind(); got != Wood {
		t.Fatalf("min tie should go to wood, got %v", got)
	}
}
