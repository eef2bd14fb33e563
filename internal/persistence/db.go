// Package persistence stores run metadata, generation records, and events in
// SQLite. It is a sink for the simulation core's output; no simulation logic
// lives here.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/barterlands/internal/config"
	"github.com/talgya/barterlands/internal/engine"
)

// DB wraps a SQLite connection for run result storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		generations INTEGER NOT NULL,
		communities INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		community_id INTEGER NOT NULL,
		community_name TEXT NOT NULL,
		population INTEGER NOT NULL,
		stock_wood REAL NOT NULL,
		stock_livestock REAL NOT NULL,
		stock_stone REAL NOT NULL,
		deficit_wood REAL NOT NULL,
		deficit_livestock REAL NOT NULL,
		deficit_stone REAL NOT NULL,
		trade_wood REAL NOT NULL,
		trade_livestock REAL NOT NULL,
		trade_stone REAL NOT NULL,
		weight_wood REAL NOT NULL,
		weight_livestock REAL NOT NULL,
		weight_stone REAL NOT NULL,
		trades_executed INTEGER NOT NULL,
		births INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		PRIMARY KEY (run_id, generation, community_id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_run ON generations(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, generation);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRunID issues a fresh run identifier. Run identity lives in the sink
// only; it never enters the deterministic record stream.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun registers a run before its records are written.
func (db *DB) SaveRun(runID string, cfg config.Config) error {
	_, err := db.conn.Exec(
		"INSERT INTO runs (run_id, seed, generations, communities, created_at) VALUES (?, ?, ?, ?, ?)",
		runID, cfg.Seed, cfg.Generations, len(cfg.Communities),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SaveRecords writes generation records for a run in one transaction.
func (db *DB) SaveRecords(runID string, records []engine.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO generations
		(run_id, generation, community_id, community_name, population,
		 stock_wood, stock_livestock, stock_stone,
		 deficit_wood, deficit_livestock, deficit_stone,
		 trade_wood, trade_livestock, trade_stone,
		 weight_wood, weight_livestock, weight_stone,
		 trades_executed, births, deaths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			runID, r.Generation, r.CommunityID, r.CommunityName, r.Population,
			r.StockWood, r.StockLivestock, r.StockStone,
			r.DeficitWood, r.DeficitLivestock, r.DeficitStone,
			r.TradeWood, r.TradeLivestock, r.TradeStone,
			r.WeightWood, r.WeightLivestock, r.WeightStone,
			r.TradesExecuted, r.Births, r.Deaths,
		)
		if err != nil {
			return fmt.Errorf("insert record gen %d community %d: %w",
				r.Generation, r.CommunityID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends run events to the database.
func (db *DB) SaveEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, generation, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Generation, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadRecords returns all generation records of a run in emission order.
func (db *DB) LoadRecords(runID string) ([]engine.Record, error) {
	var records []engine.Record
	err := db.conn.Select(&records, `SELECT
		generation, community_id, community_name, population,
		stock_wood, stock_livestock, stock_stone,
		deficit_wood, deficit_livestock, deficit_stone,
		trade_wood, trade_livestock, trade_stone,
		weight_wood, weight_livestock, weight_stone,
		trades_executed, births, deaths
		FROM generations WHERE run_id = ?
		ORDER BY generation, community_id`, runID)
	return records, err
}

// RecentEvents returns the most recent events of a run, newest first.
func (db *DB) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT generation, description, category FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}
