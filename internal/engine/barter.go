// Barter — end-of-month pairwise exchange between communities.
package engine

import (
	"github.com/talgya/barterlands/internal/community"
	"github.com/talgya/barterlands/internal/resource"
)

// Trade is one executed leg of a barter exchange. Transient: it exists for
// event reporting within a single barter pass and is not simulation state.
type Trade struct {
	Resource resource.Kind
	From     uint64
	To       uint64
	Quantity float64
	Price    float64
}

const tradeEpsilon = 1e-9

// maxExchangesPerPair bounds the greedy loop; in practice one of the four
// quantity caps empties long before this.
const maxExchangesPerPair = 100

// runBarter executes barter for every unordered community pair in ascending
// ID order. Empty communities are inert and trade nothing.
func (s *Simulation) runBarter() []Trade {
	var trades []Trade
	for i := 0; i < len(s.Communities); i++ {
		for j := i + 1; j < len(s.Communities); j++ {
			a, b := s.Communities[i], s.Communities[j]
			if a.Population() == 0 || b.Population() == 0 {
				continue
			}
			trades = append(trades, tradePair(a, b)...)
		}
	}
	for _, t := range trades {
		s.event("trade", "%.1f %s moved from community %d to %d at price %.3f",
			t.Quantity, t.Resource, t.From, t.To, t.Price)
	}
	return trades
}

// tradePair runs the greedy exchange loop between two communities. Each
// round picks the deficit resource each side values most that the other can
// deliver, converts at the weight-averaged price, and executes the largest
// quantity every constraint allows. The return leg is scaled so the value
// handed over equals the value received exactly; neither stockpile can go
// negative because quantities are capped by pre-trade surpluses.
func tradePair(a, b *community.Community) []Trade {
	var prices resource.Vector
	for _, k := range resource.Kinds {
		prices[k] = 0.5 * (a.Weights[k] + b.Weights[k])
	}

	var trades []Trade
	for round := 0; round < maxExchangesPerPair; round++ {
		ra, ok := pickWanted(a, b)
		if !ok {
			break
		}
		rb, ok := pickWanted(b, a)
		if !ok {
			break
		}

		pRa, pRb := prices[ra], prices[rb]
		if pRa <= 0 || pRb <= 0 {
			break
		}

		// x units of ra flow b→a; y = x·pRa/pRb units of rb flow a→b.
		x := b.Surplus(ra)
		if lim := a.Deficit(ra); lim < x {
			x = lim
		}
		if lim := a.Surplus(rb) * (pRb / pRa); lim < x {
			x = lim
		}
		if lim := b.Deficit(rb) * (pRb / pRa); lim < x {
			x = lim
		}
		if x <= tradeEpsilon {
			break
		}
		y := x * (pRa / pRb)

		a.Stockpile.Add(ra, x)
		a.Stockpile.Add(rb, -y)
		b.Stockpile.Add(ra, -x)
		b.Stockpile.Add(rb, y)

		a.TradeVolume.Add(ra, x)
		a.TradeVolume.Add(rb, -y)
		b.TradeVolume.Add(ra, -x)
		b.TradeVolume.Add(rb, y)
		a.TradesExecuted++
		b.TradesExecuted++

		trades = append(trades,
			Trade{Resource: ra, From: b.ID, To: a.ID, Quantity: x, Price: pRa},
			Trade{Resource: rb, From: a.ID, To: b.ID, Quantity: y, Price: pRb},
		)
	}
	return trades
}

// pickWanted returns the resource the receiver is most eager to obtain
// (weight × deficit) among those the giver holds surplus of. Canonical
// resource order breaks ties.
func pickWanted(receiver, giver *community.Community) (resource.Kind, bool) {
	best := resource.Kind(0)
	bestScore := -1.0
	found := false
	for _, k := range resource.Kinds {
		if receiver.Deficit(k) <= tradeEpsilon || giver.Surplus(k) <= tradeEpsilon {
			continue
		}
		score := receiver.Weights[k] * receiver.Deficit(k)
		if !found || score > bestScore {
			best, bestScore, found = k, score, true
		}
	}
	return best, found
}
