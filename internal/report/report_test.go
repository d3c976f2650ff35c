package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/tally-cli/tally/internal/engine"
)

// countedTable builds a table holding the given words.
func countedTable(t *testing.T, words ...string) *engine.Table {
	t.Helper()
	tab, err := engine.New(engine.InitialCapacity(len(words)))
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	for _, w := range words {
		for {
			err := tab.AddWord(w)
			if err == nil {
				break
			}
			if !errors.Is(err, engine.ErrPoolFull) {
				t.Fatalf("AddWord(%q) failed: %v", w, err)
			}
			if err := tab.GrowPool(); err != nil {
				t.Fatalf("GrowPool failed: %v", err)
			}
		}
		if !tab.SizeBelow(70) {
			if err := tab.Expand(); err != nil {
				t.Fatalf("Expand failed: %v", err)
			}
		}
	}
	return tab
}

func TestPlainRendererLayout(t *testing.T) {
	tab := countedTable(t, "banana", "apple", "banana", "cherry", "banana")

	r, err := NewRenderer(Plain)
	if err != nil {
		t.Fatalf("NewRenderer(Plain) failed: %v", err)
	}

	out := r.Render(tab)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, header, rule, 3 rows, rule
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}

	if lines[0] != "Number of appearances of each word:" {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    Word") || !strings.HasSuffix(lines[1], "Count") {
		t.Errorf("header = %q", lines[1])
	}
	if strings.Trim(lines[2], "-") != "" || lines[2] != lines[6] {
		t.Errorf("dash rules malformed: %q vs %q", lines[2], lines[6])
	}

	// rows are alphabetical and column-aligned on the longest word
	wantRows := []string{
		"    apple     1",
		"    banana    3",
		"    cherry    1",
	}
	for i, want := range wantRows {
		if lines[3+i] != want {
			t.Errorf("row %d = %q, want %q", i, lines[3+i], want)
		}
	}
}

func TestPlainRendererEmptyTable(t *testing.T) {
	tab := countedTable(t)

	r, err := NewRenderer(Plain)
	if err != nil {
		t.Fatalf("NewRenderer(Plain) failed: %v", err)
	}
	if out := r.Render(tab); out != "" {
		t.Errorf("Render of empty table = %q, want empty", out)
	}
}

func TestPrettyRendererContents(t *testing.T) {
	tab := countedTable(t, "delta", "echo", "delta")

	r, err := NewRenderer(Table)
	if err != nil {
		t.Fatalf("NewRenderer(Table) failed: %v", err)
	}

	out := r.Render(tab)
	for _, want := range []string{"WORD", "COUNT", "delta", "echo", "DISTINCT"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestNewRendererNames(t *testing.T) {
	tests := []struct {
		format Format
		name   string
	}{
		{Plain, "plain"},
		{Table, "table"},
	}

	for _, tt := range tests {
		r, err := NewRenderer(tt.format)
		if err != nil {
			t.Fatalf("NewRenderer(%v) failed: %v", tt.format, err)
		}
		if r.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", r.Name(), tt.name)
		}
	}

	if _, err := NewRenderer(Format(99)); err == nil {
		t.Error("NewRenderer(99) succeeded, want error")
	}
}

func TestRenderStats(t *testing.T) {
	tab := countedTable(t, "one", "two", "two", "three", "three", "three")

	out := RenderStats(tab, 6)
	for _, want := range []string{
		"Hash table statistics:",
		"Input length: 6 words",
		"Total insertions:",
		"Average collisions per insertion:",
		"Mean and median displacements:",
		`Most common word: "three", appearing 3 time(s)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStatsEmptyTable(t *testing.T) {
	tab := countedTable(t)

	out := RenderStats(tab, 0)
	if !strings.Contains(out, "capacity of 1 (0.00% used)") {
		t.Errorf("unexpected empty-table stats:\n%s", out)
	}
	if strings.Contains(out, "Total insertions") {
		t.Errorf("empty-table stats should stop after occupancy:\n%s", out)
	}
}
