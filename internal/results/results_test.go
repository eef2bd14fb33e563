package results

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/talgya/barterlands/internal/engine"
)

func sampleRecords() []engine.Record {
	return []engine.Record{
		{
			Generation: 1, CommunityID: 1, CommunityName: "Woodland", Population: 10,
			StockWood: 512.5, DeficitLivestock: 380.25, TradeStone: -12.5,
			WeightWood: 0.2, WeightLivestock: 0.5, WeightStone: 0.3,
			TradesExecuted: 4, Births: 1, Deaths: 2,
		},
		{
			Generation: 2, CommunityID: 1, CommunityName: "Woodland", Population: 9,
			StockWood: 300, WeightWood: 1.0 / 3, WeightLivestock: 1.0 / 3, WeightStone: 1.0 / 3,
		},
	}
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}

	header := rows[0]
	if header[0] != "generation" || header[len(header)-1] != "deaths" {
		t.Fatalf("unexpected header: %v", header)
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			t.Fatalf("row %d has %d columns, header has %d", i, len(row), len(header))
		}
	}
	if rows[1][2] != "Woodland" || rows[1][4] != "512.5" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl.zst")

	w, err := NewArchiveWriter(path)
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	want := sampleRecords()
	for _, r := range want {
		if err := w.Write(r); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d mismatch:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestReadArchiveMissingFile(t *testing.T) {
	if _, err := ReadArchive(filepath.Join(t.TempDir(), "absent.jsonl.zst")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
