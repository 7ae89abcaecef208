package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// summaryStyles is the trimmed set of lipgloss styles PrintSummary needs,
// grounded on the teacher's internal/ui/pretty.Styles (same style names,
// same color choices) but scoped to just what a timing table uses.
type summaryStyles struct {
	title lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
}

func newSummaryStyles() summaryStyles {
	return summaryStyles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		value: lipgloss.NewStyle().Bold(true),
		dim:   lipgloss.NewStyle().Faint(true),
	}
}

// FormatSummary renders r's phase timings as a sorted table: slowest phase
// first, each row padded to the widest phase name, with a total row at the
// bottom. Grounded on the teacher's internal/ui/pretty/summary.go +
// table.go (same divider-and-aligned-columns shape, reduced to one metric).
func (r *Recorder) FormatSummary() string {
	styles := newSummaryStyles()
	timings := r.Timings()
	names := r.orderedPhases()
	sort.Slice(names, func(i, j int) bool { return timings[names[i]] > timings[names[j]] })

	var b strings.Builder
	b.WriteString(styles.title.Render("Build timings") + "\n")
	b.WriteString(styles.dim.Render(strings.Repeat("-", 40)) + "\n")

	width := len("phase")
	for _, n := range names {
		if len(n) > width {
			width = len(n)
		}
	}

	var total time.Duration
	for _, n := range names {
		d := timings[n]
		total += d
		fmt.Fprintf(&b, "  %-*s  %s\n", width, n, styles.value.Render(d.Round(time.Microsecond).String()))
	}
	b.WriteString(styles.dim.Render(strings.Repeat("-", 40)) + "\n")
	fmt.Fprintf(&b, "  %-*s  %s\n", width, "total", styles.value.Render(total.Round(time.Microsecond).String()))
	return b.String()
}

// PrintSummary writes FormatSummary to stdout.
func (r *Recorder) PrintSummary() {
	fmt.Print(r.FormatSummary())
}
