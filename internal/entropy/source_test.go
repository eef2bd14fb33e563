package entropy

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 100 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestUniformRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(-0.5, 0.5)
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("uniform draw %g out of [-0.5, 0.5)", v)
		}
	}
}

func TestDirichletIsADistribution(t *testing.T) {
	s := New(99)
	alphas := [][]float64{
		{1, 1, 1},
		{30, 15, 5},
		{0.2, 0.2, 0.2}, // shape < 1 exercises the boost path
		{0, 1, 1},       // non-positive parameter gets floored
	}
	for _, alpha := range alphas {
		for i := 0; i < 200; i++ {
			d := s.Dirichlet(alpha)
			sum := 0.0
			for _, v := range d {
				if v < 0 || v > 1 {
					t.Fatalf("component %g out of [0,1] for alpha %v", v, alpha)
				}
				sum += v
			}
			if sum < 0.999999 || sum > 1.000001 {
				t.Fatalf("dirichlet sum = %g for alpha %v", sum, alpha)
			}
		}
	}
}
