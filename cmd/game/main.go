package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Shape-Reveal/internal/config"
	"github.com/Garsondee/Shape-Reveal/internal/host"
	"github.com/Garsondee/Shape-Reveal/internal/scores"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flag.IntVar(&cfg.Level, "level", cfg.Level, "level multiplier for the final score")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "device profile (desktop, smartphone)")
	flag.StringVar(&cfg.ScoreDB, "scores", cfg.ScoreDB, "SQLite file for the score ledger")
	debug := flag.Bool("debug", false, "show the round log panel")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []host.Option{host.WithLogger(log.Default()), host.WithDebugFeed(*debug)}
	if cfg.ScoreDB != "" {
		ledger, err := scores.Open(cfg.ScoreDB)
		if err != nil {
			return err
		}
		defer ledger.Close()
		opts = append(opts, host.WithScores(ledger))
	}

	h, err := host.New(cfg, opts...)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.ContainerID)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	return ebiten.RunGame(h)
}
