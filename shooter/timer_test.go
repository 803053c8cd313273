package shooter_test

import (
	"testing"

	"github.com/plus3/spaceshooter/shooter"
	"github.com/stretchr/testify/assert"
)

func TestRepeatingTimerKeepsOverflow(t *testing.T) {
	timer := shooter.NewTimer(0.5, shooter.Repeating)

	assert.False(t, timer.Tick(0.25))
	assert.False(t, timer.JustFinished())

	assert.True(t, timer.Tick(0.375))
	assert.True(t, timer.JustFinished())
	assert.Equal(t, 1, timer.TimesFinished())
	assert.InDelta(t, 0.125, timer.Elapsed, 1e-9)

	assert.False(t, timer.Tick(0.25))
	assert.False(t, timer.Finished())
}

func TestRepeatingTimerCountsMultipleWraps(t *testing.T) {
	timer := shooter.NewTimer(0.1, shooter.Repeating)

	assert.True(t, timer.Tick(0.35))
	assert.Equal(t, 3, timer.TimesFinished())
	assert.InDelta(t, 0.05, timer.Elapsed, 1e-9)
}

func TestOnceTimerFinishesOnce(t *testing.T) {
	timer := shooter.NewTimer(0.5, shooter.Once)

	assert.True(t, timer.Tick(0.75))
	assert.Equal(t, 0.5, timer.Elapsed)
	assert.True(t, timer.Finished())

	assert.False(t, timer.Tick(1))
	assert.False(t, timer.JustFinished())
	assert.True(t, timer.Finished())

	timer.Reset()
	assert.False(t, timer.Finished())
	assert.True(t, timer.Tick(0.5))
}

func TestTimerAtFixedStep(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		step     int
	}{
		{"ship shooting delay", 0.12, 8},
		{"foe shoot delay", 1.2, 77},
		{"foe spawn delay", 1.5, 96},
		{"pumper animation", 0.07, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := shooter.NewTimer(tt.duration, shooter.Repeating)
			first := 0
			for i := 1; i <= tt.step+1 && first == 0; i++ {
				if timer.Tick(1.0 / 64.0) {
					first = i
				}
			}
			assert.Equal(t, tt.step, first)
		})
	}
}

func TestZeroDurationTimerFiresEveryTick(t *testing.T) {
	timer := shooter.NewTimer(0, shooter.Repeating)
	assert.True(t, timer.Tick(0.01))
	assert.True(t, timer.Tick(0.01))
}
