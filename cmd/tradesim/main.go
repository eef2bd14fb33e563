// Command tradesim runs the cooperative community trade simulation and
// writes its per-generation records to CSV, SQLite, and a compressed
// archive.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/talgya/barterlands/internal/config"
	"github.com/talgya/barterlands/internal/engine"
	"github.com/talgya/barterlands/internal/persistence"
	"github.com/talgya/barterlands/internal/results"
)

func main() {
	var (
		configPath  = flag.String("config", "", "run configuration file (.yaml or .json); empty uses defaults")
		generations = flag.Int("generations", 0, "override configured generation count")
		seed        = flag.Int64("seed", 0, "override configured seed")
		seedSet     bool
		dbPath      = flag.String("db", "", "SQLite database path; empty disables the database sink")
		outDir      = flag.String("out", "outputs", "directory for CSV and archive output")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.Generations = *generations
	}
	if seedSet {
		cfg.Seed = *seed
	}

	sim, err := engine.New(cfg)
	if err != nil {
		slog.Error("simulation setup failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("create output directory", "error", err)
		os.Exit(1)
	}

	archivePath := filepath.Join(*outDir, "records.jsonl.zst")
	archive, err := results.NewArchiveWriter(archivePath)
	if err != nil {
		slog.Error("open archive", "error", err)
		os.Exit(1)
	}
	sim.OnGeneration = func(r engine.Record) {
		if err := archive.Write(r); err != nil {
			slog.Error("archive write failed", "error", err)
		}
	}

	slog.Info("starting run",
		"seed", cfg.Seed,
		"generations", cfg.Generations,
		"days_per_month", cfg.DaysPerMonth,
		"communities", len(cfg.Communities),
	)

	records := sim.Run()

	if err := archive.Close(); err != nil {
		slog.Error("close archive", "error", err)
	}

	csvPath := filepath.Join(*outDir, "results.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		slog.Error("create results csv", "error", err)
		os.Exit(1)
	}
	if err := results.WriteCSV(f, records); err != nil {
		f.Close()
		slog.Error("write results csv", "error", err)
		os.Exit(1)
	}
	f.Close()

	if *dbPath != "" {
		db, err := persistence.Open(*dbPath)
		if err != nil {
			slog.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID := persistence.NewRunID()
		if err := db.SaveRun(runID, cfg); err != nil {
			slog.Error("save run", "error", err)
			os.Exit(1)
		}
		if err := db.SaveRecords(runID, records); err != nil {
			slog.Error("save records", "error", err)
			os.Exit(1)
		}
		if err := db.SaveEvents(runID, sim.Events); err != nil {
			slog.Error("save events", "error", err)
			os.Exit(1)
		}
		slog.Info("run persisted", "run_id", runID, "db", *dbPath)
	}

	finalPop := 0
	for _, c := range sim.Communities {
		finalPop += c.Population()
	}
	fmt.Printf("\nRun complete: %d generations, %d records, %d souls remaining.\n",
		cfg.Generations, len(records), finalPop)
	fmt.Printf("Results CSV: %s\n", csvPath)
	fmt.Printf("Archive:     %s\n", archivePath)
}
