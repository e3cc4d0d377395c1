package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tsiface/internal/diag"
	"tsiface/internal/driver"
	"tsiface/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.ts|directory]...",
	Short: "Apply available fixes to source files",
	Long:  "Check the given paths, list the available fixes and apply them according to the chosen strategy.",
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply the preferred fix of every diagnostic")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.Options{Mode: fix.ApplyModeOnce, TargetID: targetID, DryRun: dryRun}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}

	parseOpts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	paths, err := driver.CollectFiles(roots, cfg.Parse.Extensions, cfg.Check.Exclude)
	if err != nil {
		return err
	}
	fs, results, err := driver.CheckFiles(cmd.Context(), paths, driver.CheckOptions{Parse: parseOpts})
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.Bag != nil {
			diagnostics = append(diagnostics, r.Bag.Items()...)
		}
	}
	res, applyErr := fix.Apply(fs, diagnostics, opts)
	return printFixResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func printFixResult(out io.Writer, res *fix.Result, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(out, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, item.PrimaryPath, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		if dryRun {
			fmt.Fprintln(out, "Files that would change:")
		} else {
			fmt.Fprintln(out, "Updated files:")
		}
		for _, change := range res.FileChanges {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, skip.ID, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", skip.ID, skip.Reason)
			}
		}
	}
	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(out, "No fixes applied")
		return nil
	}
	return applyErr
}
