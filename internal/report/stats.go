package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/tally-cli/tally/internal/engine"
)

// RenderStats formats the hashing statistics section: occupancy,
// accumulated insertion/collision counters, the on-demand displacement
// summary and the most frequent word. tokens is the total token count of
// the input.
func RenderStats(tab *engine.Table, tokens int) string {
	var b strings.Builder

	b.WriteByte('\n')
	b.WriteString(color.New(color.Bold).Sprint("Hash table statistics:"))
	b.WriteByte('\n')

	fmt.Fprintf(&b, "\tInput length: %s words\n", humanize.Comma(int64(tokens)))
	fmt.Fprintf(&b, "\tTable size is %d with a capacity of %d (%.2f%% used)\n",
		tab.Len(), tab.Capacity(), tab.Occupancy()*100)

	if tab.Len() == 0 {
		return b.String()
	}

	stats := tab.Stats()
	mean, median := tab.DisplacementSummary()
	word, count := tab.MostFrequent()

	fmt.Fprintf(&b, "\tTotal insertions: %s\n", humanize.Comma(int64(stats.TotalInsertions)))
	fmt.Fprintf(&b, "\tAverage collisions per insertion: %.4f\n", tab.CollisionsPerInsertion())
	fmt.Fprintf(&b, "\tMean and median displacements: %.4f and %.2f\n", mean, median)
	fmt.Fprintf(&b, "\tMost common word: %q, appearing %s time(s)\n", word, humanize.Comma(int64(count)))

	return b.String()
}
