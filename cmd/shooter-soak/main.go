// Command shooter-soak plays the game headless with an autopilot for a while
// and prints a report of rounds, scores and system timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/internal/scores"
	"github.com/plus3/spaceshooter/shooter"
)

// statsEvery is how many updates pass between entity counts.
const statsEvery = 64

type soak struct {
	world  *shooter.World
	board  *scores.Board
	report *Report
}

func newSoak(cfg config.Config, frameDt time.Duration) (*soak, error) {
	board, err := scores.NewBoard(nil)
	if err != nil {
		return nil, err
	}

	world := shooter.NewWorld(cfg,
		shooter.WithRecorder(board),
		shooter.WithSystems(&AutopilotSystem{}),
	)
	return &soak{
		world: world,
		board: board,
		report: &Report{
			Seed:    cfg.Simulation.Seed,
			FrameDt: frameDt,
		},
	}, nil
}

func (s *soak) update() {
	if s.world.State() == shooter.GameOver {
		s.world.SetInput(shooter.Input{Reset: true})
	}

	start := time.Now()
	steps := s.world.Update(s.report.FrameDt.Seconds())
	s.report.UpdateTime.Samples = append(s.report.UpdateTime.Samples, time.Since(start))

	s.report.TotalUpdates++
	s.report.TotalSteps += int64(steps)
	s.report.SimulatedTime += s.report.FrameDt

	if s.report.TotalUpdates%statsEvery == 0 {
		s.report.PeakEntities = max(s.report.PeakEntities, s.world.Storage().CollectStats().TotalEntityCount)
	}
}

func (s *soak) finish() {
	totals := s.board.Totals()
	s.report.Rounds = totals.Games
	s.report.BestScore = totals.Best
	s.report.TotalKills = totals.TotalKills
	s.report.Systems = s.world.Stats().Simulation.Systems
	s.report.UpdateTime.Finalize()
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	configPath := flag.String("config", "", "YAML config file, defaults to $"+config.EnvConfig)
	seed := flag.Uint64("seed", 1, "Seed for foe placement.")
	frameDt := flag.Duration("frame", time.Second/60, "Simulated time per update.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Soak] %v", err)
	}
	cfg.Simulation.Seed = *seed

	s, err := newSoak(cfg, *frameDt)
	if err != nil {
		log.Fatalf("[Soak] %v", err)
	}
	s.report.Duration = *duration
	s.report.GCPauseMetrics = *gcPauseMetrics

	runtime.ReadMemStats(&s.report.MemStatsStart)

	log.Printf("[Soak] running for %s with seed %d", *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			s.update()
		}
	}

	s.report.TotalTime = time.Since(startTime)
	s.finish()
	runtime.ReadMemStats(&s.report.MemStatsEnd)

	log.Printf("[Soak] finished %d rounds", s.report.Rounds)

	fmt.Println("\n\n--- Soak Report ---")
	if err := s.report.Generate(os.Stdout); err != nil {
		log.Fatalf("[Soak] failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}
	return config.Load(path)
}
