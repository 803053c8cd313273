// Command shooter-term plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/internal/scores"
	"github.com/plus3/spaceshooter/internal/terminal"
	"github.com/plus3/spaceshooter/shooter"
)

const appName = "spaceshooter"

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults to $"+config.EnvConfig)
	seed := flag.Uint64("seed", 0, "Seed for foe placement, 0 picks one at random.")
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	board, err := scores.Open(appName)
	if err != nil {
		log.Printf("[Main] scores will not be saved: %v", err)
		board, _ = scores.NewBoard(nil)
	}

	screen, err := terminal.Open()
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	// The terminal is the screen, so logs go to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			screen.Fini()
			log.Fatalf("[Main] failed to open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world := shooter.NewWorld(cfg, shooter.WithRecorder(board))
	err = terminal.New(world, screen).Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatalf("[Main] %v", err)
	}
	log.Printf("[Main] bye, best score %d", world.Score().Best)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}
