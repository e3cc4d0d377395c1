package diag

import "tsiface/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// InsertFix builds a fix that inserts text at a zero-width span.
func InsertFix(title string, at source.Span, text string) Fix {
	return Fix{Title: title, Edits: []FixEdit{{Span: at.AtStart(), NewText: text}}}
}

// DeleteFix builds a fix that removes the bytes covered by sp.
func DeleteFix(title string, sp source.Span) Fix {
	return Fix{Title: title, Edits: []FixEdit{{Span: sp}}}
}
