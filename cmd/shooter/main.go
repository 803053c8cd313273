// Command shooter opens the game in a window.
package main

import (
	"flag"
	"log"

	debugui_ebiten "github.com/plus3/spaceshooter/ecs/debugui/ebiten"
	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/internal/scores"
	"github.com/plus3/spaceshooter/internal/screen"
	"github.com/plus3/spaceshooter/shooter"
)

const appName = "spaceshooter"

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults to $"+config.EnvConfig)
	seed := flag.Uint64("seed", 0, "Seed for foe placement, 0 picks one at random.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	world := shooter.NewWorld(cfg, shooter.WithRecorder(openBoard()))

	var opts []screen.Option
	if *debug {
		width, height := cfg.Window.Size()
		opts = append(opts, screen.WithOverlay(debugui_ebiten.NewImguiBackend(cfg.Window.Title, width, height)))
	}

	if err := screen.New(world, opts...).Run(); err != nil {
		log.Fatalf("[Main] %v", err)
	}
	log.Printf("[Main] bye, best score %d", world.Score().Best)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	log.Printf("[Main] loading config from %s", path)
	return config.Load(path)
}

// openBoard falls back to an in-memory board when the data directory cannot
// be used.
func openBoard() *scores.Board {
	board, err := scores.Open(appName)
	if err == nil {
		return board
	}
	log.Printf("[Main] scores will not be saved: %v", err)
	board, _ = scores.NewBoard(nil)
	return board
}
