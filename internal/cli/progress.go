package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/triadbench/internal/bench"
	"github.com/agbru/triadbench/internal/calibration"
	"github.com/agbru/triadbench/internal/format"
)

// ProgressObserver implements bench.Observer. The spinner animates only
// while the vectors are allocated. Once timing starts it is stopped and
// progress is rewritten in place between probes and trials, so nothing
// draws during a measured region.
type ProgressObserver struct {
	sp       Spinner
	w        io.Writer
	spinning bool
	status   bool
}

// Verify interface compliance.
var _ bench.Observer = (*ProgressObserver)(nil)

// NewProgressObserver creates an observer drawing on w.
func NewProgressObserver(w io.Writer) *ProgressObserver {
	return &ProgressObserver{sp: newSpinner(w), w: w}
}

// NewObserver returns a spinner observer when w is a terminal and
// enabled is set, and a no-op observer otherwise. The returned stop
// function must be called once the run is over.
func NewObserver(w io.Writer, enabled bool) (bench.Observer, func()) {
	if !enabled || !IsTerminal(w) {
		return bench.NullObserver{}, func() {}
	}
	p := NewProgressObserver(w)
	return p, p.Stop
}

// OnPhase implements bench.Observer.
func (p *ProgressObserver) OnPhase(ph bench.Phase) {
	switch ph {
	case bench.PhaseInit:
		p.sp.UpdateSuffix(" allocating vectors")
		if !p.spinning {
			p.sp.Start()
			p.spinning = true
		}
	case bench.PhaseCalibrate:
		p.pause()
		p.writeStatus("calibrating")
	case bench.PhaseTrials:
		p.pause()
		p.writeStatus("running trials")
	}
}

// OnProbe implements bench.Observer.
func (p *ProgressObserver) OnProbe(st calibration.State) {
	last := st.History[len(st.History)-1]
	p.writeStatus(fmt.Sprintf("calibrating: probe %d, %d iters in %s",
		st.Probes, last.Iters, format.FormatDuration(last.Duration)))
}

// OnTrial implements bench.Observer.
func (p *ProgressObserver) OnTrial(k, ntimes int, d time.Duration) {
	done := k + 1
	p.writeStatus(fmt.Sprintf("trials %s %d/%d (last %s)",
		progressBar(float64(done)/float64(ntimes), ProgressBarWidth),
		done, ntimes, format.FormatDuration(d)))
}

// Stop halts the spinner and clears the status line.
func (p *ProgressObserver) Stop() {
	p.pause()
	if p.status {
		fmt.Fprint(p.w, clearLine)
		p.status = false
	}
}

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\033[K"

func (p *ProgressObserver) pause() {
	if p.spinning {
		p.sp.Stop()
		p.spinning = false
	}
}

func (p *ProgressObserver) writeStatus(s string) {
	fmt.Fprint(p.w, clearLine+s)
	p.status = true
}
