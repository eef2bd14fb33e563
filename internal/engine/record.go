// Generation records — the flat per-community snapshots emitted at the end
// of every month for the persistence and results sinks.
package engine

import (
	"github.com/talgya/barterlands/internal/community"
	"github.com/talgya/barterlands/internal/resource"
)

// Record is one community's end-of-month snapshot. Immutable once emitted,
// and free of wall-clock state: two runs with equal seed and configuration
// produce byte-identical record sequences.
type Record struct {
	Generation    int    `json:"generation" db:"generation"`
	CommunityID   uint64 `json:"community_id" db:"community_id"`
	CommunityName string `json:"community_name" db:"community_name"`
	Population    int    `json:"population" db:"population"`

	StockWood      float64 `json:"stock_wood" db:"stock_wood"`
	StockLivestock float64 `json:"stock_livestock" db:"stock_livestock"`
	StockStone     float64 `json:"stock_stone" db:"stock_stone"`

	DeficitWood      float64 `json:"deficit_wood" db:"deficit_wood"`
	DeficitLivestock float64 `json:"deficit_livestock" db:"deficit_livestock"`
	DeficitStone     float64 `json:"deficit_stone" db:"deficit_stone"`

	TradeWood      float64 `json:"trade_wood" db:"trade_wood"`
	TradeLivestock float64 `json:"trade_livestock" db:"trade_livestock"`
	TradeStone     float64 `json:"trade_stone" db:"trade_stone"`

	WeightWood      float64 `json:"weight_wood" db:"weight_wood"`
	WeightLivestock float64 `json:"weight_livestock" db:"weight_livestock"`
	WeightStone     float64 `json:"weight_stone" db:"weight_stone"`

	TradesExecuted int `json:"trades_executed" db:"trades_executed"`
	Births         int `json:"births" db:"births"`
	Deaths         int `json:"deaths" db:"deaths"`
}

// snapshot captures a community's state for the current generation.
func (s *Simulation) snapshot(c *community.Community) Record {
	return Record{
		Generation:    s.Generation,
		CommunityID:   c.ID,
		CommunityName: c.Name,
		Population:    c.Population(),

		StockWood:      c.Stockpile[resource.Wood],
		StockLivestock: c.Stockpile[resource.Livestock],
		StockStone:     c.Stockpile[resource.Stone],

		DeficitWood:      c.Deficit(resource.Wood),
		DeficitLivestock: c.Deficit(resource.Livestock),
		DeficitStone:     c.Deficit(resource.Stone),

		TradeWood:      c.TradeVolume[resource.Wood],
		TradeLivestock: c.TradeVolume[resource.Livestock],
		TradeStone:     c.TradeVolume[resource.Stone],

		WeightWood:      c.Weights[resource.Wood],
		WeightLivestock: c.Weights[resource.Livestock],
		WeightStone:     c.Weights[resource.Stone],

		TradesExecuted: c.TradesExecuted,
		Births:         c.Births,
		Deaths:         c.Deaths,
	}
}

// Weights returns the record's weight vector.
func (r Record) Weights() resource.Vector {
	return resource.Vector{r.WeightWood, r.WeightLivestock, r.WeightStone}
}

// Deficits returns the record's deficit vector.
func (r Record) Deficits() resource.Vector {
	return resource.Vector{r.DeficitWood, r.DeficitLivestock, r.DeficitStone}
}
