package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Passes          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. Passes in
// which a run condition skipped the system are not counted.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(storage *Storage)
}

// queryExecutor is implemented by Query.
type queryExecutor interface {
	Execute()
}

type scheduledSystem struct {
	system     System
	queries    []queryExecutor
	conditions []RunCondition
	stats      *systemStatsInternal
}

const (
	// DefaultStep matches a 64 Hz fixed update.
	DefaultStep = 1.0 / 64.0
	// DefaultMaxSteps bounds catch-up work after a long stall.
	DefaultMaxSteps = 8
)

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
	frame   *UpdateFrame
	passes  int64

	// Step is the fixed delta used by Advance.
	Step float64
	// MaxSteps caps the passes one Advance call may run; leftover time is dropped.
	MaxSteps    int
	accumulator float64
}

// NewScheduler creates a scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		frame:    newUpdateFrame(storage),
		Step:     DefaultStep,
		MaxSteps: DefaultMaxSteps,
	}
}

// Register appends system to the schedule, binds its Query and Singleton
// fields, and gates it behind conditions (all must hold).
func (s *Scheduler) Register(system System, conditions ...RunCondition) {
	s.systems = append(s.systems, &scheduledSystem{
		system:     system,
		queries:    s.bindFields(system),
		conditions: conditions,
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	name := systemType.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func (s *Scheduler) bindFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if query, ok := binder.(queryExecutor); ok {
			queries = append(queries, query)
		}
	}
	return queries
}

func (e *scheduledSystem) ready(storage *Storage) bool {
	for _, cond := range e.conditions {
		if !cond(storage) {
			return false
		}
	}
	return true
}

// Once runs every ready system with delta dt and flushes their commands.
func (s *Scheduler) Once(dt float64) {
	frame := s.frame
	frame.DeltaTime = dt

	for _, entry := range s.systems {
		if !entry.ready(s.storage) {
			continue
		}

		start := time.Now()
		for _, query := range entry.queries {
			query.Execute()
		}
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
	s.passes++
}

// Advance adds elapsed seconds to the accumulator and runs as many fixed
// Step passes as fit, up to MaxSteps. It returns the number of passes run.
func (s *Scheduler) Advance(elapsed float64) int {
	if elapsed > 0 {
		s.accumulator += elapsed
	}

	steps := 0
	for s.accumulator >= s.Step && steps < s.MaxSteps {
		s.Once(s.Step)
		s.accumulator -= s.Step
		steps++
	}

	if steps == s.MaxSteps && s.accumulator >= s.Step {
		s.accumulator = 0
	}
	return steps
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Passes:      s.passes,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		internal := entry.stats

		var avgDuration, minDuration time.Duration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
