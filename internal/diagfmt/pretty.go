package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tsiface/internal/diag"
	"tsiface/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    map[diag.Severity]*color.Color
	bold   *color.Color
	gutter *color.Color
	note   *color.Color
	fix    *color.Color
	add    *color.Color
	del    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   mk(color.FgRed, color.Bold),
			diag.SevWarning: mk(color.FgYellow, color.Bold),
			diag.SevInfo:    mk(color.FgCyan, color.Bold),
		},
		bold:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		note:   mk(color.FgCyan),
		fix:    mk(color.FgGreen),
		add:    mk(color.FgGreen),
		del:    mk(color.FgRed),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	if c, ok := p.sev[s]; ok {
		return c
	}
	return p.bold
}

// Pretty writes diagnostics in a human-readable form. Items are printed in
// bag order, so callers usually run bag.Sort first. Each diagnostic is
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the primary span,
// then notes and fixes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	sevColor := pal.severity(d.Severity)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		pal.bold.Sprint(displayPath(fs, f, opts.PathMode)), start.Line, start.Col,
		sevColor.Sprint(d.Severity.String()), sevColor.Sprint(d.Code.ID()), d.Message)

	gutterWidth := len(fmt.Sprint(start.Line))
	first := start.Line
	if opts.Context > 0 {
		first = max(1, start.Line-min(start.Line-1, uint32(opts.Context)))
	}
	for line := first; line < start.Line; line++ {
		writeSourceLine(w, pal, gutterWidth, line, f.GetLine(line), opts.Width)
	}
	text := f.GetLine(start.Line)
	writeSourceLine(w, pal, gutterWidth, start.Line, text, opts.Width)

	endCol := end.Col
	if end.Line != start.Line {
		endCol = uint32(len(text)) + 1
	}
	pad, width := underlineColumns(text, start.Col, endCol)
	fmt.Fprintf(w, "%s %s %s%s\n",
		strings.Repeat(" ", gutterWidth), pal.gutter.Sprint("|"),
		strings.Repeat(" ", pad), sevColor.Sprint(underline(width)))

	if opts.ShowNotes {
		for _, n := range d.Notes {
			np, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				displayPath(fs, fs.Get(n.Span.File), opts.PathMode), np.Line, np.Col, n.Msg)
		}
	}
	if opts.ShowFixes || opts.ShowPreview {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fx.Title)
			if !opts.ShowPreview {
				continue
			}
			for _, edit := range fx.Edits {
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				for _, l := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.del.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.add.Sprint("+ "+l))
				}
			}
		}
	}
}

func writeSourceLine(w io.Writer, pal palette, gutterWidth int, line uint32, text string, maxWidth uint8) {
	shown := expandTabs(text)
	if maxWidth > 0 && runewidth.StringWidth(shown) > int(maxWidth) {
		shown = runewidth.Truncate(shown, int(maxWidth), "...")
	}
	fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, line), pal.gutter.Sprint("|"), shown)
}

// underlineColumns converts the 1-based byte columns [startCol, endCol) of
// line into display columns: the padding before the underline and its
// width. Wide runes count double and tabs expand.
func underlineColumns(line string, startCol, endCol uint32) (pad, width int) {
	s := clampCol(line, startCol)
	e := max(clampCol(line, endCol), s)
	pad = runewidth.StringWidth(expandTabs(line[:s]))
	width = runewidth.StringWidth(expandTabs(line[:e])) - pad
	return pad, max(width, 1)
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

func underline(width int) string {
	return "^" + strings.Repeat("~", width-1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
