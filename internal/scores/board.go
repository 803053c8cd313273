// Package scores keeps the best score between runs in the platform data
// directory.
package scores

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	scoresObject   = "scores"
	scoresProperty = "board"
)

// Totals is the persisted state of a Board.
type Totals struct {
	Best       int `yaml:"best"`
	BestKills  int `yaml:"bestKills"`
	Games      int `yaml:"games"`
	TotalKills int `yaml:"totalKills"`
}

// Board records finished rounds. A Board without a gdata manager only keeps
// scores in memory.
type Board struct {
	manager *gdata.Manager
	totals  Totals
}

// Open opens the data directory for appName and loads the saved board.
func Open(appName string) (*Board, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir: %w", err)
	}
	return NewBoard(manager)
}

// NewBoard loads the board from manager, which may be nil.
func NewBoard(manager *gdata.Manager) (*Board, error) {
	b := &Board{manager: manager}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) load() error {
	if b.manager == nil {
		log.Printf("[Scores] no data dir, scores are kept in memory")
		return nil
	}
	if !b.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil
	}

	data, err := b.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	var totals Totals
	if err := yaml.Unmarshal(data, &totals); err != nil {
		return fmt.Errorf("failed to parse scores: %w", err)
	}
	b.totals = totals
	return nil
}

func (b *Board) save() error {
	if b.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(b.totals)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	if err := b.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}

func (b *Board) Best() int {
	return b.totals.Best
}

func (b *Board) Totals() Totals {
	return b.totals
}

// Record adds a finished round and reports whether it set a new best score.
// The in-memory board is updated even when saving fails.
func (b *Board) Record(points, kills int) (bool, error) {
	b.totals.Games++
	b.totals.TotalKills += kills

	newBest := points > b.totals.Best
	if newBest {
		b.totals.Best = points
		b.totals.BestKills = kills
	}
	return newBest, b.save()
}

// Reset clears the board.
func (b *Board) Reset() error {
	b.totals = Totals{}
	return b.save()
}
