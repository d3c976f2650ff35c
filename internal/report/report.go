// Package report renders the word-count table produced by the engine.
//
// Two renderers are available through the Renderer interface: a plain
// column-aligned layout and a boxed table built with go-pretty. Column
// widths come from the engine's incrementally tracked extremes, so
// rendering never rescans the counts.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tally-cli/tally/internal/engine"
)

// Format selects a report renderer.
type Format int

const (
	// Plain is the column-aligned text layout (default).
	Plain Format = iota
	// Table is a boxed table rendered with go-pretty.
	Table
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Table:
		return "table"
	default:
		return "unknown"
	}
}

// Renderer turns a counted table into report text.
type Renderer interface {
	// Render returns the full report for the table, empty when the table
	// holds no words.
	Render(tab *engine.Table) string

	// Name returns a human-readable name for this renderer (for logging)
	Name() string
}

// NewRenderer creates a Renderer for the specified format. This is the
// single entry point used by the app layer.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case Plain:
		return &plainRenderer{}, nil
	case Table:
		return &prettyRenderer{}, nil
	default:
		return nil, fmt.Errorf("report: unknown format %d", int(f))
	}
}

// plainRenderer prints one padded line per word, framed by dash rules,
// with the word column sized to the longest word and the count column to
// the widest count.
type plainRenderer struct{}

func (r *plainRenderer) Render(tab *engine.Table) string {
	if tab.Len() == 0 {
		return ""
	}

	wordWidth := tab.LongestWordLen()
	_, maxCount := tab.MostFrequent()
	countWidth := len(strconv.FormatUint(maxCount, 10))

	var b strings.Builder
	b.WriteString("Number of appearances of each word:\n")

	header := fmt.Sprintf("    %-*s    %s", wordWidth, "Word", "Count")
	rule := strings.Repeat("-", len(header)+3)

	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(rule)
	b.WriteByte('\n')

	for _, wc := range tab.Report() {
		fmt.Fprintf(&b, "    %-*s    %*d\n", wordWidth, wc.Word, countWidth, wc.Count)
	}

	b.WriteString(rule)
	b.WriteByte('\n')
	return b.String()
}

func (r *plainRenderer) Name() string {
	return "plain"
}

// prettyRenderer draws a boxed table with a distinct-word footer.
type prettyRenderer struct{}

func (r *prettyRenderer) Render(tab *engine.Table) string {
	if tab.Len() == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Word", "Count"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Count", Align: text.AlignRight},
	})

	for _, wc := range tab.Report() {
		tw.AppendRow(table.Row{wc.Word, wc.Count})
	}
	tw.AppendFooter(table.Row{"Distinct", tab.Len()})

	return tw.Render() + "\n"
}

func (r *prettyRenderer) Name() string {
	return "table"
}
