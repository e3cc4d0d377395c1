// Package diag defines the diagnostic model shared by the lexer, the parser
// and every consumer of their output.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with a stable string
//     form such as SYN2004 or MOD3002.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the source.Span pointing at the issue. Missing-token
//     diagnostics use a zero-width span placed where the token belongs.
//   - Notes: optional secondary spans, for example the opening brace of an
//     unclosed interface body.
//   - Fixes: optional edits that resolve the problem, such as inserting ';'
//     or deleting a disallowed modifier. The LSP server offers them as quick
//     fixes.
//
// # Emitting diagnostics
//
// Producers build a diagnostic with ReportError(...).WithFixSuggestion(...)
// and Emit it to a Reporter. BagReporter collects into a capped Bag, which
// supports sorting and merging. DedupReporter sits in front of it when
// several phases may report the same problem.
//
// Package diag performs no formatting or I/O; rendering lives in
// internal/diagfmt.
package diag
