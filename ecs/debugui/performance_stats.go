package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spritewalk/ecs"
)

// StatsWindow shows frame times, storage counts and per-system timings.
type StatsWindow struct {
	Schedulers []*ecs.Scheduler

	history []float32
	next    int
	filled  int
}

// NewStatsWindow keeps frames of frame-time history.
func NewStatsWindow(frames int, schedulers ...*ecs.Scheduler) StatsWindow {
	return StatsWindow{
		Schedulers: schedulers,
		history:    make([]float32, max(frames, 1)),
	}
}

// Record adds one frame time in seconds to the history.
func (w *StatsWindow) Record(dt float32) {
	w.history[w.next] = dt * 1000
	w.next = (w.next + 1) % len(w.history)
	w.filled = min(w.filled+1, len(w.history))
}

// AverageMillis is the mean of the recorded frame times.
func (w *StatsWindow) AverageMillis() float32 {
	if w.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range w.history[:w.filled] {
		sum += ms
	}
	return sum / float32(w.filled)
}

func (w *StatsWindow) Render(storage *ecs.Storage, dt float32) {
	defer imgui.End()
	w.Record(dt)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := w.AverageMillis(); avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f TPS)", avg, 1000/avg))
	}
	imgui.Separator()
	imgui.PlotLinesFloatPtr("##frametime", &w.history[0], int32(len(w.history)))

	if imgui.TreeNodeStr("Systems") {
		for _, s := range w.Schedulers {
			for _, st := range s.Stats().Systems {
				imgui.Text(fmt.Sprintf("%-14s last %6s avg %6s max %6s",
					st.Name, st.LastDuration, st.AvgDuration, st.MaxDuration))
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, a := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%X: %d entities, %d components", a.ID, a.EntityCount, len(a.ComponentTypes)))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}
