package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tsiface/internal/diag"
	"tsiface/internal/diagfmt"
	"tsiface/internal/driver"
	"tsiface/internal/observ"
	"tsiface/internal/source"
	"tsiface/internal/ui"
	"tsiface/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.ts|directory]...",
	Short: "Report diagnostics for TypeScript interface declarations",
	Long:  `Check parses every source file under the given paths (default: the working directory) and reports malformed interface members`,
	RunE:  runCheck,
}

type checkFlags struct {
	format    string
	jobs      int
	cache     bool
	dropCache bool
	watch     bool
	ui        uiMode
	withNotes bool
	suggest   bool
	preview   bool
	fullPath  bool
	timings   bool
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|short|json|sarif, default from config)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from config, then one per CPU)")
	checkCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	checkCmd.Flags().Bool("drop-cache", false, "clear the on-disk cache before checking")
	checkCmd.Flags().Bool("watch", false, "re-check changed files until interrupted")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "show fix previews")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	flags := cmd.Flags()
	if f.format, err = flags.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.format == "" {
		f.format = cfg.Check.Format
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.jobs <= 0 {
		if f.jobs, err = cfg.Jobs(); err != nil {
			return f, err
		}
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	f.cache = f.cache || cfg.Check.Cache
	if f.dropCache, err = flags.GetBool("drop-cache"); err != nil {
		return f, fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	if f.watch, err = flags.GetBool("watch"); err != nil {
		return f, fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}
	if f.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.suggest, err = flags.GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = flags.GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return f, fmt.Errorf("failed to get timings flag: %w", err)
	}
	switch f.format {
	case "pretty", "short", "json", "sarif":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	return f, nil
}

// runCheck exits with status 1 when any file has errors, unless watching.
func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	parseOpts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	opts := driver.CheckOptions{Parse: parseOpts, Jobs: flags.jobs}
	if flags.cache || flags.dropCache {
		cache, err := driver.OpenDiskCache("tsiface")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if flags.dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		if flags.cache {
			opts.Cache = cache
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	paths, err := driver.CollectFiles(roots, cfg.Parse.Extensions, cfg.Check.Exclude)
	if err != nil {
		return err
	}
	exitCode, err := checkAndReport(ctx, cmd.OutOrStdout(), paths, opts, flags, color, os.Args[1:])
	if err != nil {
		return err
	}

	if flags.watch {
		fmt.Fprintf(os.Stderr, "watching %d roots for changes\n", len(roots))
		err := driver.Watch(ctx, roots, driver.WatchOptions{
			Extensions: cfg.Parse.Extensions,
			Exclude:    cfg.Check.Exclude,
		}, func(changed []string) error {
			_, err := checkAndReport(ctx, cmd.OutOrStdout(), changed, opts, flags, color, nil)
			return err
		})
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	if exitCode != 0 {
		_ = stopProfiling()
		os.Exit(exitCode)
	}
	return nil
}

func checkAndReport(ctx context.Context, out io.Writer, paths []string, opts driver.CheckOptions, flags checkFlags, color bool, invocation []string) (int, error) {
	fs, results, err := runWithProgress(ctx, paths, opts, shouldUseTUI(flags.ui))
	if err != nil {
		return 0, fmt.Errorf("check failed: %w", err)
	}
	if err := report(out, fs, results, flags, color, invocation); err != nil {
		return 0, err
	}
	if flags.timings {
		var total observ.Report
		for _, r := range results {
			total.Add(r.Timing)
		}
		printTimings(os.Stderr, fmt.Sprintf("%d files", len(results)), total)
	}
	if driver.ErrorCount(results) > 0 {
		return 1, nil
	}
	return 0, nil
}

func runWithProgress(ctx context.Context, paths []string, opts driver.CheckOptions, tui bool) (*source.FileSet, []driver.FileResult, error) {
	if !tui || len(paths) == 0 {
		return driver.CheckFiles(ctx, paths, opts)
	}

	events := make(chan driver.Event, len(paths))
	opts.Progress = events
	type outcome struct {
		fs      *source.FileSet
		results []driver.FileResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		fs, results, err := driver.CheckFiles(ctx, paths, opts)
		close(events)
		done <- outcome{fs, results, err}
	}()
	if err := ui.RunProgress("checking", paths, events, os.Stderr); err != nil {
		log.Warningf("progress display: %v", err)
	}
	// The display may quit early; keep the workers unblocked.
	for range events {
	}
	res := <-done
	return res.fs, res.results, res.err
}

func report(out io.Writer, fs *source.FileSet, results []driver.FileResult, flags checkFlags, color bool, invocation []string) error {
	pathMode := diagfmt.PathModeAuto
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	showFixes := flags.suggest || flags.preview

	switch flags.format {
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:       color,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   flags.withNotes,
			ShowFixes:   showFixes,
			ShowPreview: flags.preview,
		}
		first := true
		for _, r := range results {
			if r.Bag == nil || r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			diagfmt.Pretty(out, r.Bag, fs, opts)
		}
		return nil
	case "short":
		merged := driver.MergeBags(results)
		if output := diag.FormatShortDiagnostics(merged.Items(), fs, flags.withNotes); output != "" {
			fmt.Fprintln(out, output)
		}
		return nil
	case "json":
		return diagfmt.JSON(out, driver.MergeBags(results), fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     showFixes,
			IncludePreviews:  flags.preview,
		})
	case "sarif":
		return diagfmt.Sarif(out, driver.MergeBags(results), fs, diagfmt.SarifRunMeta{
			ToolName:       "tsiface",
			ToolVersion:    version.Version,
			InvocationArgs: invocation,
		})
	}
	return fmt.Errorf("unknown format: %s", flags.format)
}
