package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/mini-park/internal/assets"
	"github.com/talgya/mini-park/internal/config"
	"github.com/talgya/mini-park/internal/engine"
	"github.com/talgya/mini-park/internal/people"
	"github.com/talgya/mini-park/internal/persistence"
)

type runOptions struct {
	config string
	save   string
	db     string
	days   int
	resume bool
	speed  float64
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runPark(ctx context.Context, opts runOptions) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.speed > 0 {
		cfg.Engine.Speed = opts.speed
	}

	// ── Ledger ────────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(opts.db), 0o755); err != nil {
		return err
	}
	db, err := persistence.Open(opts.db)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("ledger opened", "path", opts.db)

	// ── Park ──────────────────────────────────────────────────────────
	sim := cfg.NewSimulation()
	if opts.resume {
		if _, err := os.Stat(opts.save); err == nil {
			if err := sim.LoadFile(opts.save); err != nil {
				return err
			}
		} else {
			slog.Info("no save file found, opening a new park", "path", opts.save)
		}
	}

	// The journal records the day before this hook flushes it.
	var journal *persistence.Journal
	sim.OnDay = func(engine.Stats) {
		if err := journal.Flush(); err != nil {
			slog.Error("daily ledger flush failed", "error", err)
		}
	}
	journal = persistence.NewJournal(db, sim)

	if err := db.SaveMeta("scenario", cfg.Scenario.Name()); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := cfg.NewEngine()
	eng.OnFrame = sim.Step

	fmt.Printf("\n%s is open: %d rides, %d staff, %s in the bank.\n",
		cfg.Scenario.Name(), len(sim.Rides.Rides()), sim.Staff.Count(people.KindAny), formatMoney(sim.Finances.Cash))

	if opts.days > 0 {
		eng.RunFrames(opts.days * people.TickCountPerDay)
	} else {
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		fmt.Println("Running... (Ctrl+C to stop)")
		if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	// ── Shutdown ──────────────────────────────────────────────────────
	if err := journal.Flush(); err != nil {
		slog.Error("final ledger flush failed", "error", err)
	}
	size, err := sim.SaveFile(opts.save)
	if err != nil {
		return err
	}
	if _, err := db.RecordSave(opts.save, cfg.Scenario.Name(), size, sim.Stats()); err != nil {
		return err
	}

	printStats(sim)
	fmt.Printf("Saved to %s (%s).\n", opts.save, formatBytes(size))
	return nil
}

func runInspect(path, configPath string, asJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	sim := cfg.NewSimulation()
	if err := sim.LoadFile(path); err != nil {
		return err
	}
	if asJSON {
		return printJSON(sim.Stats())
	}
	printStats(sim)
	printRides(sim)
	printComplaints(sim)
	printInbox(sim)
	return nil
}

func runSaves(dbPath string) error {
	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	saves, err := db.Saves()
	if err != nil {
		return fmt.Errorf("list saves: %w", err)
	}
	printSaves(saves)
	return nil
}

func runAssets(dir string) error {
	cat, err := assets.Scan(dir)
	if err != nil {
		return err
	}
	printCatalog(cat)
	return nil
}
