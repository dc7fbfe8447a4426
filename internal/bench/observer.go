package bench

import (
	"time"

	"github.com/agbru/triadbench/internal/calibration"
)

// Phase names a stage of a run.
type Phase string

const (
	PhaseInit      Phase = "init"
	PhaseCalibrate Phase = "calibrate"
	PhaseTrials    Phase = "trials"
)

// Observer receives progress notifications from a Runner. It decouples the
// driver from presentation: the CLI renders a spinner, tests record calls.
// Callbacks run on the driver goroutine between timed regions.
type Observer interface {
	OnPhase(p Phase)
	OnProbe(st calibration.State)
	OnTrial(k, ntimes int, d time.Duration)
}

// NullObserver ignores every notification.
type NullObserver struct{}

// OnPhase implements Observer.
func (NullObserver) OnPhase(Phase) {}

// OnProbe implements Observer.
func (NullObserver) OnProbe(calibration.State) {}

// OnTrial implements Observer.
func (NullObserver) OnTrial(int, int, time.Duration) {}
