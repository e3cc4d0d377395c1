package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsiface/internal/diagfmt"
	"tsiface/internal/driver"
)

var eventsCmd = &cobra.Command{
	Use:   "events [flags] file.ts",
	Short: "Print the visitor events of a source file",
	Long:  `Events parses a file and prints the scope, declaration and use events the parser emits, in order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	eventsCmd.Flags().Bool("js", false, "parse as JavaScript")
}

func runEvents(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	js, err := cmd.Flags().GetBool("js")
	if err != nil {
		return fmt.Errorf("failed to get js flag: %w", err)
	}
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	if js {
		opts.TypeScript = false
	}

	result, err := driver.ParseFile(args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color, Context: 2})
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printTimings(os.Stderr, args[0], result.Timing)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatEventsPretty(out, result.Events, result.FileSet)
	case "json":
		return diagfmt.FormatEventsJSON(out, result.Events, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
