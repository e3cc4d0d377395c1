package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tsiface/internal/version"
)

var rootCmd = &cobra.Command{
	Use:                "tsiface",
	Short:              "TypeScript interface member parser and checker",
	Long:               `tsiface parses TypeScript interface bodies, recovers from malformed members and reports diagnostics`,
	PersistentPreRunE:  setupRoot,
	PersistentPostRunE: teardownRoot,
	SilenceUsage:       true,
}

// main registers the subcommands and global flags and runs the root command.
// A command error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to tsiface.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (quiet|error|warning|notice|info|debug)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")

	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	err := rootCmd.Execute()
	_ = stopProfiling()
	if err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
