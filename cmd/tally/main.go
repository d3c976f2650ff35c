package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tally-cli/tally/internal/app"
	"github.com/tally-cli/tally/internal/report"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	stats, _ := cmd.Flags().GetBool("stats")
	stem, _ := cmd.Flags().GetBool("stem")
	plainFlag, _ := cmd.Flags().GetBool("plain")
	tableFlag, _ := cmd.Flags().GetBool("table")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine report format
	var format report.Format
	switch {
	case tableFlag:
		format = report.Table
	case plainFlag:
		format = report.Plain
	default:
		format = report.Plain // default if no format flag
	}

	// at most one positional argument: the input file; none means stdin
	var source string
	if len(args) == 1 {
		source = args[0]
	}

	return app.Config{
		Source: source,
		Stem:   stem,
		Stats:  stats,
		Format: format,
		Debug:  debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "tally [file]",
	Short: "A CLI tool for counting word frequencies",
	Long: `Tally reads text from a file or standard input, splits it into word
tokens and reports how many times each distinct word occurs, listed
alphabetically.

Examples:
  tally book.txt
  cat notes.txt | tally --stats
  tally --stem --table essay.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// run the app!
		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("tally failed: %w", err)
		}

		fmt.Print(result)

		return nil
	},
}

func init() {
	rootCmd.Flags().BoolP("stats", "s", false, "Print hash table performance statistics after the report")
	rootCmd.Flags().Bool("stem", false, "Fold words to their English stem before counting")

	// output format flags are mutually exclusive
	rootCmd.Flags().Bool("plain", false, "Column-aligned plain text report (default)")
	rootCmd.Flags().Bool("table", false, "Boxed table report")
	rootCmd.MarkFlagsMutuallyExclusive("plain", "table")

	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
