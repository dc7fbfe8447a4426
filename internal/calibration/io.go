package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/triadbench/internal/format"
	"github.com/agbru/triadbench/internal/ui"
)

// WriteProbeTable formats the calibration history as a table.
func WriteProbeTable(out io.Writer, st State) {
	fmt.Fprintf(out, "\n--- Calibration ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sProbe%s\t%sIterations%s\t%sElapsed%s\t%sGrowth%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\n", strings.Repeat("─", 44))
	for i, p := range st.History {
		growth := fmt.Sprintf("x%d", p.Factor)
		if p.Factor == 0 {
			growth = fmt.Sprintf("%s(%s)%s", ui.ColorGreen(), st.Reason, ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t%s%d%s\t%s\t%s\n",
			ui.ColorCyan(), i+1, ui.ColorReset(),
			ui.ColorYellow(), p.Iters, ui.ColorReset(),
			format.FormatDuration(p.Duration), growth)
	}
	tw.Flush()
}
