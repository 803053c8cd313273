package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// Scheduled names a scheduler whose systems are listed in the timings table.
type Scheduled struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// PerformanceStats is a window with storage counts, a frame time graph and
// per-system timings.
type PerformanceStats struct {
	history    *frameHistory
	schedulers []Scheduled
}

func NewPerformanceStats(historyFrames int, schedulers ...Scheduled) PerformanceStats {
	return PerformanceStats{
		history:    newFrameHistory(historyFrames),
		schedulers: schedulers,
	}
}

func (ps *PerformanceStats) Render(storage *ecs.Storage, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.push(deltaTime * 1000.0)

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.history.average(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	for _, scheduled := range ps.schedulers {
		ps.renderSystems(scheduled)
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) renderSystems(scheduled Scheduled) {
	stats := scheduled.Scheduler.GetStats()
	if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d passes)", scheduled.Name, stats.Passes)) {
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV(scheduled.Name+"##systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last (ms)")
		imgui.TableSetupColumn("Avg (ms)")
		imgui.TableSetupColumn("Max (ms)")
		imgui.TableHeadersRow()

		for _, system := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(system.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(millis(system.LastDuration))
			imgui.TableNextColumn()
			imgui.Text(millis(system.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(millis(system.MaxDuration))
		}

		imgui.EndTable()
	}
	imgui.TreePop()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds()*1000)
}

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(size, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average ignores slots that were never written.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// FrameTimer measures wall-clock time between debug frames. It is kept as a
// singleton by SpawnDebugUI.
type FrameTimer struct {
	lastFrameTime time.Time
	now           func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{now: time.Now}
}

// Tick returns the seconds since the previous Tick, or 0 on the first call.
func (ft *FrameTimer) Tick() float32 {
	if ft.now == nil {
		ft.now = time.Now
	}
	now := ft.now()
	if ft.lastFrameTime.IsZero() {
		ft.lastFrameTime = now
		return 0
	}
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
