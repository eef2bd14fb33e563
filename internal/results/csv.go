// Package results writes the core's record stream to tabular and archive
// formats for downstream analysis and plotting.
package results

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/talgya/barterlands/internal/engine"
)

// csvHeader is the fixed column layout consumed by the plotting tooling.
var csvHeader = []string{
	"generation", "community_id", "community_name", "population",
	"stock_wood", "stock_livestock", "stock_stone",
	"deficit_wood", "deficit_livestock", "deficit_stone",
	"trade_wood", "trade_livestock", "trade_stone",
	"weight_wood", "weight_livestock", "weight_stone",
	"trades_executed", "births", "deaths",
}

// WriteCSV writes the records as a CSV table with a header row.
func WriteCSV(w io.Writer, records []engine.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Generation),
			strconv.FormatUint(r.CommunityID, 10),
			r.CommunityName,
			strconv.Itoa(r.Population),
			formatFloat(r.StockWood), formatFloat(r.StockLivestock), formatFloat(r.StockStone),
			formatFloat(r.DeficitWood), formatFloat(r.DeficitLivestock), formatFloat(r.DeficitStone),
			formatFloat(r.TradeWood), formatFloat(r.TradeLivestock), formatFloat(r.TradeStone),
			formatFloat(r.WeightWood), formatFloat(r.WeightLivestock), formatFloat(r.WeightStone),
			strconv.Itoa(r.TradesExecuted),
			strconv.Itoa(r.Births),
			strconv.Itoa(r.Deaths),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
