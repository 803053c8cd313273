package shooter

import "math"

type TimerMode int

const (
	Once TimerMode = iota
	Repeating
)

// Timer counts elapsed seconds towards Duration. A Repeating timer wraps and
// keeps the overflow; a Once timer stops at Duration.
type Timer struct {
	Duration float64
	Elapsed  float64
	Mode     TimerMode

	finished bool
	times    int
}

func NewTimer(seconds float64, mode TimerMode) Timer {
	return Timer{Duration: seconds, Mode: mode}
}

// Tick advances the timer by dt seconds and reports whether it finished at
// least once during this tick.
func (t *Timer) Tick(dt float64) bool {
	if t.Mode == Once && t.finished {
		t.times = 0
		return false
	}

	t.times = 0
	t.Elapsed += dt

	if t.Duration <= 0 {
		t.times = 1
		t.finished = true
		t.Elapsed = 0
		return true
	}

	if t.Elapsed < t.Duration {
		t.finished = false
		return false
	}

	t.finished = true
	if t.Mode == Repeating {
		t.times = int(t.Elapsed / t.Duration)
		t.Elapsed = math.Mod(t.Elapsed, t.Duration)
	} else {
		t.times = 1
		t.Elapsed = t.Duration
	}
	return true
}

// JustFinished reports whether the last Tick finished the timer.
func (t *Timer) JustFinished() bool {
	return t.times > 0
}

// TimesFinished is how many times the last Tick wrapped a repeating timer.
func (t *Timer) TimesFinished() int {
	return t.times
}

// Finished reports whether the timer has reached Duration. For repeating
// timers this only holds during the tick that wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.times = 0
}
