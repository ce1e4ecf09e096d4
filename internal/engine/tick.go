// Package engine drives the park simulation: a frame loop, the calendar,
// and the Simulation that wires the people pools to their collaborators.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// DefaultFrameInterval is the simulated time of one frame.
const DefaultFrameInterval = 30 * time.Millisecond

// Engine drives the simulation forward, one frame at a time.
type Engine struct {
	Frame    uint64        // Frames run so far (monotonic, never resets).
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused.
	Interval time.Duration // Simulated time per frame.

	// OnFrame is called every frame with the simulated milliseconds that passed.
	OnFrame func(delayMs int)
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: DefaultFrameInterval,
	}
}

// Run runs frames at the engine's pace until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("simulation engine started", "frame", e.Frame, "speed", e.Speed, "interval", e.Interval)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation engine stopped", "frame", e.Frame)
			return ctx.Err()
		case <-timer.C:
		}

		if e.Speed <= 0 {
			// Paused; check again shortly.
			timer.Reset(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.step()

		// Sleep for the remainder of the frame, adjusted for speed.
		target := time.Duration(float64(e.Interval) / e.Speed)
		timer.Reset(max(target-time.Since(start), 0))
	}
}

// RunFrames runs n frames back to back.
func (e *Engine) RunFrames(n int) {
	for _i := 0; _i < n; _i++ {
		e.step()
	}
}

func (e *Engine) step() {
	e.Frame++
	if e.OnFrame != nil {
		e.OnFrame(int(e.Interval / time.Millisecond))
	}
}
