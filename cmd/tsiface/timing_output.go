package main

import (
	"fmt"
	"io"

	"tsiface/internal/observ"
)

func printTimings(out io.Writer, label string, report observ.Report) {
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%s\n%s", label, report.Summary())
}
