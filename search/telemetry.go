package search

import (
	"log/slog"
	"time"
)

// Telemetry receives search progress callbacks. It satisfies
// engine.Instruments (ObserveSimulation) so a Telemetry value can be
// threaded anywhere the engine package wants timing instrumentation,
// plus ObserveIterations for the tree-search-specific iteration count.
type Telemetry interface {
	ObserveSimulation(d time.Duration)
	ObserveIterations(n int64)
}

// SlogTelemetry reports search progress through a structured logger,
// grounded on the teacher's log.Printf progress lines in MultiMCTS.
type SlogTelemetry struct {
	Logger *slog.Logger
}

func (t SlogTelemetry) ObserveSimulation(d time.Duration) {
	if t.Logger == nil {
		return
	}
	t.Logger.Debug("search simulation step", slog.Duration("elapsed", d))
}

func (t SlogTelemetry) ObserveIterations(n int64) {
	if t.Logger == nil {
		return
	}
	t.Logger.Info("search completed", slog.Int64("iterations", n))
}
