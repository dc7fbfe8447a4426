package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/triadbench/internal/bench"
	"github.com/agbru/triadbench/internal/calibration"
	"github.com/agbru/triadbench/internal/format"
	"github.com/agbru/triadbench/internal/sysmon"
	"github.com/agbru/triadbench/internal/triad"
	"github.com/agbru/triadbench/internal/ui"
)

// Summary carries everything the verbose panel displays.
type Summary struct {
	Outcome       bench.Outcome
	Host          sysmon.Host
	ThreadsSource string
	Version       string
}

// row is one label/value line of the panel.
type row struct {
	label string
	value string
	warn  bool
}

// PrintSummary writes the verbose summary panel followed by the calibration
// probe table.
//
// Parameters:
//   - out: The destination writer, normally stderr.
//   - s: The run outcome and host description to present.
func PrintSummary(out io.Writer, s Summary) {
	styles := ui.CurrentStyles()
	rows := summaryRows(s)

	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, styles.Title.Render("STREAM triad "+s.Version))
	for _, r := range rows {
		label := styles.Label.Render(r.label + strings.Repeat(" ", width-len(r.label)))
		value := styles.Value.Render(r.value)
		if r.warn {
			value = styles.Warn.Render(r.value)
		}
		lines = append(lines, label+"  "+value)
	}
	fmt.Fprintln(out, styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))

	calibration.WriteProbeTable(out, s.Outcome.Calibration)
}

func summaryRows(s Summary) []row {
	o := s.Outcome
	r := o.Result

	threads := fmt.Sprintf("%d", r.Threads)
	if s.ThreadsSource != "" {
		threads += " (" + s.ThreadsSource + ")"
	}

	rows := []row{
		{label: "Strategy", value: fmt.Sprintf("%s (scale %d)", r.Strategy, r.Scale)},
		{label: "Vector length", value: fmt.Sprintf("%d", r.Size)},
		{label: "Footprint", value: format.FormatBytes(uint64(triad.VectorCount * triad.BytesPerWord * r.Size))},
		{label: "Threads", value: threads},
		{label: "Iterations", value: fmt.Sprintf("%d after %d probes (%s)", r.Iters, o.Calibration.Probes, o.Calibration.Reason)},
		{label: "Trials", value: fmt.Sprintf("%d timed, 1 warm-up", o.Summary.Count)},
		{label: "Min / Avg / Max", value: fmt.Sprintf("%s / %s / %s",
			seconds(r.MinTime), seconds(r.AvgTime), seconds(r.MaxTime))},
		{label: "Std dev", value: seconds(r.StdDev)},
		{label: "Rate", value: format.FormatRate(r.MFLOPS(), "FLOP")},
		{label: "Bandwidth", value: format.FormatRate(r.BandwidthMBps(), "B")},
	}

	gc := "collector left on"
	if o.GCActive {
		gc = "collector paused during timed phases"
	}
	rows = append(rows,
		row{label: "GC", value: fmt.Sprintf("%s, %d cycles, %s allocated",
			gc, o.Memory.GCCycles, format.FormatBytes(o.Memory.Allocated)), warn: o.Memory.GCCycles > 0},
	)

	if o.PeakSamples > 0 {
		rows = append(rows, row{label: "Peak usage", value: fmt.Sprintf("CPU %.1f%%, memory %.1f%% (%d samples)",
			o.Peak.CPUPercent, o.Peak.MemPercent, o.PeakSamples)})
	}

	h := s.Host
	if h.Model != "" {
		rows = append(rows, row{label: "CPU", value: h.Model})
	}
	rows = append(rows, row{label: "Cores", value: fmt.Sprintf("%d logical, %d physical, GOMAXPROCS %d",
		h.LogicalCores, h.PhysicalCores, h.GOMAXPROCS)})
	if len(h.Features) > 0 {
		rows = append(rows, row{label: "Features", value: h.GOARCH + " " + strings.Join(h.Features, " ")})
	}
	if h.TotalMemory > 0 {
		rows = append(rows, row{label: "Memory", value: fmt.Sprintf("%s available of %s",
			format.FormatBytes(h.AvailMemory), format.FormatBytes(h.TotalMemory))})
	}
	rows = append(rows, row{label: "Elapsed", value: format.FormatDuration(o.Elapsed)})
	return rows
}

func seconds(s float64) string {
	return format.FormatDuration(time.Duration(s * float64(time.Second)))
}

// PrintError writes a colorized error message.
func PrintError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
}

// PrintWarning writes a colorized warning.
func PrintWarning(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, "%sWarning:%s %s\n", ui.ColorYellow(), ui.ColorReset(), fmt.Sprintf(format, args...))
}
