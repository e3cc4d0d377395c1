package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"tsiface/internal/config"
	"tsiface/internal/driver"
	"tsiface/internal/prof"
)

var log = commonlog.GetLogger("tsiface.cli")

// cfg is the loaded configuration, set by setupRoot before any command runs.
var cfg = config.Default()

var logVerbosity = map[string]int{
	"quiet":   -4,
	"error":   -2,
	"warning": -1,
	"notice":  0,
	"info":    1,
	"debug":   2,
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, _, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if level == "" {
		level = cfg.Log.Level
	}
	verbosity, ok := logVerbosity[level]
	if !ok {
		return fmt.Errorf("invalid --log-level value %q", level)
	}
	logFile, err := flags.GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	if logFile == "" {
		logFile = cfg.LogFile()
	}
	var logPath *string
	if logFile != "" {
		logPath = &logFile
	}
	commonlog.Configure(verbosity, logPath)
	return startProfiling(cmd)
}

var profSession *prof.Session

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	profSession, err = prof.Start(opts)
	return err
}

func teardownRoot(_ *cobra.Command, _ []string) error {
	return stopProfiling()
}

// stopProfiling is safe to call more than once.
func stopProfiling() error {
	return profSession.Stop()
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

// parseOptions merges --max-diagnostics over the configuration.
func parseOptions(cmd *cobra.Command) (driver.ParseOptions, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.ParseOptions{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		if maxDiagnostics, err = cfg.MaxDiagnostics(); err != nil {
			return driver.ParseOptions{}, err
		}
	}
	return driver.ParseOptions{TypeScript: cfg.Parse.TypeScript, MaxDiagnostics: maxDiagnostics}, nil
}
