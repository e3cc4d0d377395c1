// Package visit defines the event stream the parser emits while it walks a
// module. No syntax tree is built: consumers such as scope analysis, the
// document-symbol provider and the events command observe declarations,
// uses and scope boundaries as they happen.
//
// Invariants:
//   - Every Enter* event is matched by exactly one Exit* event of the same
//     scope kind, correctly nested; EnterFunctionScopeBody lives inside a
//     function scope and has no separate exit.
//   - Each interface member produces exactly one PropertyDeclaration, with a
//     nil name when the key is not a plain identifier.
//   - The uses of a computed key or an initializer precede the member's
//     PropertyDeclaration.
package visit
