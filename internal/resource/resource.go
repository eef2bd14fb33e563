// Package resource defines the three traded resource kinds and the small
// per-resource vector type the rest of the simulation is written against.
package resource

import "fmt"

// Kind identifies one of the three resources.
type Kind uint8

const (
	Wood Kind = iota
	Livestock
	Stone

	NumKinds = 3
)

// Kinds is the canonical iteration order. Every loop over resources in the
// simulation uses this order; deterministic tie-breaks depend on it.
var Kinds = [NumKinds]Kind{Wood, Livestock, Stone}

var kindNames = [NumKinds]string{"wood", "livestock", "stone"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind converts a lowercase resource name to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}

// Names returns the canonical resource names in order.
func Names() []string {
	return []string{kindNames[0], kindNames[1], kindNames[2]}
}

// Vector holds one float64 per resource kind, indexed by Kind.
type Vector [NumKinds]float64

// Get returns the value for a kind.
func (v Vector) Get(k Kind) float64 { return v[k] }

// Set assigns the value for a kind.
func (v *Vector) Set(k Kind, val float64) { v[k] = val }

// Add increments the value for a kind.
func (v *Vector) Add(k Kind, delta float64) { v[k] += delta }

// Sum returns the total across all kinds.
func (v Vector) Sum() float64 {
	return v[Wood] + v[Livestock] + v[Stone]
}

// Clamp bounds every component to [lo, hi].
func (v Vector) Clamp(lo, hi float64) Vector {
	for i := range v {
		if v[i] < lo {
			v[i] = lo
		}
		if v[i] > hi {
			v[i] = hi
		}
	}
	return v
}

// Normalize scales the vector to sum to one, treating negative components as
// zero. A vector with no positive mass falls back to uniform.
func (v Vector) Normalize() Vector {
	var total float64
	for i := range v {
		if v[i] < 0 {
			v[i] = 0
		}
		total += v[i]
	}
	if total <= 0 {
		return Vector{1.0 / NumKinds, 1.0 / NumKinds, 1.0 / NumKinds}
	}
	for i := range v {
		v[i] /= total
	}
	return v
}

// MaxKind returns the kind with the largest value, earliest canonical kind on
// ties.
func (v Vector) MaxKind() Kind {
	best := Kinds[0]
	for _, k := range Kinds[1:] {
		if v[k] > v[best] {
			best = k
		}
	}
	return best
}

// MinKind returns the kind with the smallest value, earliest canonical kind
// on ties.
func (v Vector) MinKind() Kind {
	best := Kinds[0]
	for _, k := range Kinds[1:] {
		if v[k] < v[best] {
			best = k
		}
	}
	return best
}
