// Package fuzztests holds fuzz harnesses for the lexer and parser. They
// guard against panics, hangs and broken event invariants on arbitrary
// input.
package fuzztests
