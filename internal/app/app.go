// Package app contains the core application logic for the tally CLI tool.
// It wires the tokenizer, the counting engine and the report renderers
// into one pipeline, separated from CLI concerns.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kljensen/snowball"

	"github.com/tally-cli/tally/internal/engine"
	"github.com/tally-cli/tally/internal/input"
	"github.com/tally-cli/tally/internal/report"
	"github.com/tally-cli/tally/internal/token"
)

// tableGrowthPct is the occupancy percentage at which the table is
// expanded. Growing before the table fills keeps probe chains short and is
// what makes probe exhaustion unreachable.
const tableGrowthPct = 70

// initialListLen is the starting capacity of the token list.
const initialListLen = 128

// Config holds all configuration options for the tally application.
type Config struct {
	Source string        // input file path; empty or "-" reads standard input
	Stdin  io.Reader     // replaces standard input when set (used by tests)
	Stem   bool          // fold each token to its English stem before counting
	Stats  bool          // append hashing statistics to the report
	Format report.Format // report renderer selection
	Debug  bool
}

// Run executes the counting pipeline with the given configuration and
// returns the rendered report.
//
// Pipeline:
//  1. open the input source (file or stdin)
//  2. tokenize the full stream into the token list
//  3. size the table from the token count and feed every token through it
//  4. render the alphabetical report, plus statistics when requested
//
// ctx allows cancellation between pipeline phases.
func Run(ctx context.Context, cfg Config) (string, error) {
	src, err := openSource(cfg)
	if err != nil {
		return "", err
	}
	defer src.Close()

	tokens, err := token.Scan(src, initialListLen)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tab, err := countTokens(cfg, tokens)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	renderer, err := report.NewRenderer(cfg.Format)
	if err != nil {
		return "", err
	}
	slog.Debug("Rendering report", "renderer", renderer.Name(), "distinctWords", tab.Len())

	out := renderer.Render(tab)
	if cfg.Stats {
		out += report.RenderStats(tab, tokens.Len())
	}
	return out, nil
}

// openSource resolves the configured input to a reader.
func openSource(cfg Config) (io.ReadCloser, error) {
	if cfg.Stdin != nil && (cfg.Source == "" || cfg.Source == "-") {
		return io.NopCloser(cfg.Stdin), nil
	}
	return input.Open(cfg.Source)
}

// countTokens builds a table sized from the token count and feeds every
// token through it. A full string pool is handled locally: expand the pool
// and retry the same insert, which failed without side effects. Occupancy
// is checked after every insert so the table grows before probing can
// degrade.
func countTokens(cfg Config, tokens *token.List) (*engine.Table, error) {
	capacity := engine.InitialCapacity(tokens.Len())
	slog.Debug("Creating count table", "tokens", tokens.Len(), "initialCapacity", capacity)

	tab, err := engine.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("creating count table: %w", err)
	}

	for i := 0; i < tokens.Len(); i++ {
		word := tokens.At(i)
		if cfg.Stem {
			word = stemWord(word)
		}

		for {
			err := tab.AddWord(word)
			if err == nil {
				break
			}
			if !errors.Is(err, engine.ErrPoolFull) {
				return nil, fmt.Errorf("counting word %q: %w", word, err)
			}
			if err := tab.GrowPool(); err != nil {
				return nil, err
			}
		}

		if !tab.SizeBelow(tableGrowthPct) {
			if err := tab.Expand(); err != nil {
				return nil, fmt.Errorf("expanding count table: %w", err)
			}
		}
	}

	return tab, nil
}

// stemWord reduces word to its English stem, falling back to the original
// token when the stemmer rejects it.
func stemWord(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil || stemmed == "" {
		slog.Debug("Stemming failed, keeping original token", "word", word, "error", err)
		return word
	}
	return stemmed
}
