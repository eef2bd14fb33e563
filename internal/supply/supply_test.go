package supply

import (
	"testing"

	opensimplex "github.com/ojrac/opensimplex-go"
)

func TestNewStartsAtHalfCapacity(t *testing.T) {
	s := New(Abundant, ClassParams{Cap: 1000, Regen: 80})
	if s.Stock() != 500 {
		t.Fatalf("initial stock = %g, want 500", s.Stock())
	}
}

func TestRegenerateClampsAtCap(t *testing.T) {
	s := New(Abundant, ClassParams{Cap: 100, Regen: 80})
	for day := 1; day <= 10; day++ {
		s.Regenerate(day)
		if s.Stock() < 0 || s.Stock() > s.Cap() {
			t.Fatalf("day %d: stock %g outside [0, %g]", day, s.Stock(), s.Cap())
		}
	}
	if s.Stock() != 100 {
		t.Fatalf("stock = %g, want cap 100", s.Stock())
	}
}

func TestRegenerateNoneClassIsInert(t *testing.T) {
	s := New(None, ClassParams{Cap: 0, Regen: 0})
	s.Regenerate(1)
	if s.Stock() != 0 {
		t.Fatalf("none-class stock = %g, want 0", s.Stock())
	}
}

func TestWithdrawPartialFulfillment(t *testing.T) {
	s := New(Scarce, ClassParams{Cap: 300, Regen: 15}) // stock 150

	if got := s.Withdraw(100); got != 100 {
		t.Fatalf("withdraw 100 = %g", got)
	}
	// Only 50 left: partial fulfillment, no error.
	if got := s.Withdraw(100); got != 50 {
		t.Fatalf("withdraw from depleted = %g, want 50", got)
	}
	if got := s.Withdraw(100); got != 0 {
		t.Fatalf("withdraw from empty = %g, want 0", got)
	}
	if s.Stock() != 0 {
		t.Fatalf("stock went negative: %g", s.Stock())
	}

	if got := s.Withdraw(-5); got != 0 {
		t.Fatalf("negative withdraw = %g, want 0", got)
	}
}

func TestRegenerateWithVariationStaysBounded(t *testing.T) {
	noise := opensimplex.New(42)
	s := New(Scarce, ClassParams{Cap: 300, Regen: 15}).WithVariation(noise, 3, 0.25)

	prev := s.Stock()
	for day := 1; day <= 200; day++ {
		s.Regenerate(day)
		if s.Stock() < 0 || s.Stock() > s.Cap() {
			t.Fatalf("day %d: stock %g outside [0, %g]", day, s.Stock(), s.Cap())
		}
		if s.Stock() < prev {
			t.Fatalf("day %d: regeneration shrank the stock", day)
		}
		s.Withdraw(10)
		prev = s.Stock()
	}
}

func TestVariationIsDeterministic(t *testing.T) {
	run := func() float64 {
		noise := opensimplex.New(7)
		s := New(Abundant, ClassParams{Cap: 1000, Regen: 80}).WithVariation(noise, 1, 0.5)
		for day := 1; day <= 30; day++ {
			s.Regenerate(day)
			s.Withdraw(60)
		}
		return s.Stock()
	}
	if run() != run() {
		t.Fatal("identical seeds produced different stock trajectories")
	}
}
