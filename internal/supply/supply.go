// Package supply models the local resource stock a community gathers from:
// a capped pool that regenerates daily according to its endowment class.
package supply

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/barterlands/internal/resource"
)

// EndowmentClass describes how richly a community is endowed with a resource.
type EndowmentClass string

const (
	Abundant EndowmentClass = "abundant"
	Scarce   EndowmentClass = "scarce"
	None     EndowmentClass = "none"
)

// Classes lists the valid endowment classes.
var Classes = []EndowmentClass{Abundant, Scarce, None}

// ClassParams holds the cap and daily regeneration for one endowment class.
type ClassParams struct {
	Cap   float64
	Regen float64
}

// Supply is the gatherable stock of one resource in one community.
// Exclusively owned by its (community, resource) pair; never shared.
type Supply struct {
	Class EndowmentClass
	stock float64
	cap   float64
	regen float64

	// Smooth deterministic day-to-day regen variation. Nil disables it.
	noise     opensimplex.Noise
	channel   float64
	amplitude float64
}

// New creates a supply for an endowment class, starting at half capacity.
func New(class EndowmentClass, params ClassParams) *Supply {
	return &Supply{
		Class: class,
		stock: params.Cap / 2,
		cap:   params.Cap,
		regen: params.Regen,
	}
}

// WithVariation attaches regen variation noise. The channel separates the
// noise streams of different supplies sharing one noise field; amplitude
// scales the swing (0.25 means regen varies ±25%).
func (s *Supply) WithVariation(noise opensimplex.Noise, channel, amplitude float64) *Supply {
	s.noise = noise
	s.channel = channel
	s.amplitude = amplitude
	return s
}

// Stock returns the current stock level.
func (s *Supply) Stock() float64 { return s.stock }

// Cap returns the stock ceiling.
func (s *Supply) Cap() float64 { return s.cap }

// Regenerate replenishes the stock for one day, before gathering.
// The stock never exceeds the cap.
func (s *Supply) Regenerate(day int) {
	amount := s.regen
	if s.noise != nil && s.amplitude > 0 {
		// Eval2 is in [-1, 1]; slow drift along the day axis.
		amount *= 1 + s.amplitude*s.noise.Eval2(float64(day)*0.05, s.channel)
		if amount < 0 {
			amount = 0
		}
	}
	s.stock += amount
	if s.stock > s.cap {
		s.stock = s.cap
	}
}

// Withdraw removes up to amount from the stock and returns what was actually
// taken. Partial fulfillment is the contract; the stock never goes negative.
func (s *Supply) Withdraw(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	take := amount
	if take > s.stock {
		take = s.stock
	}
	s.stock -= take
	return take
}

// Set maps each resource kind to its supply.
type Set map[resource.Kind]*Supply
