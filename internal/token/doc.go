// Package token defines lexical token kinds, trivia and the keyword tables
// shared by the lexer and the parser.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Every keyword has its own Kind; contextual keywords such as get, set,
//     readonly and type are keywords too and the parser decides when they name
//     something.
//   - Line breaks and comments are leading Trivia of the following token and
//     never appear in the main token stream.
//   - '>' is never combined into '>>', '>=' or '>>>'.
package token
