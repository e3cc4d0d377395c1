package parser

import (
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/visit"
)

func TestModuleStatements(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		events []string
	}{
		{"function", "function f(a) { return a + b; }", []string{
			"decl(f:function)", "enter_fn", "decl(a:parameter)", "enter_fn_body", "use(a)", "use(b)", "exit_fn",
		}},
		{"generic function", "function id<T>(x: T): T { return x }", []string{
			"decl(id:function)", "enter_fn", "decl(T:generic_parameter)", "type_use(T)", "decl(x:parameter)",
			"type_use(T)", "enter_fn_body", "use(x)", "exit_fn",
		}},
		{"declared function", "declare function f(): void;", []string{"decl(f:function)", "enter_fn", "exit_fn"}},
		{"variables", "const x = y, {a, b: [c]} = z;", []string{
			"use(y)", "decl(x:variable)", "use(z)", "decl(a:variable)", "decl(c:variable)",
		}},
		{"typed variable", "let m: Map<K, Array<V>> = new Map();", []string{
			"type_use(Map)", "type_use(K)", "type_use(Array)", "type_use(V)", "use(Map)", "decl(m:variable)",
		}},
		{"block", "{ let v = 1; }", []string{"enter_block", "decl(v:variable)", "exit_block"}},
		{"arrow", "const f = (a, b) => a + c;", []string{
			"enter_fn", "decl(a:parameter)", "decl(b:parameter)", "use(a)", "use(c)", "exit_fn", "decl(f:variable)",
		}},
		{"typed arrow", "const f = (a: A = d): R => a;", []string{
			"enter_fn", "type_use(A)", "use(d)", "decl(a:parameter)", "use(a)", "exit_fn", "decl(f:variable)",
		}},
		{"simple arrow", "x => x;", []string{"enter_fn", "decl(x:parameter)", "use(x)", "exit_fn"}},
		{"parenthesised", "(a, b);", []string{"use(a)", "use(b)"}},
		{"async call", "async (x);", []string{"use(async)", "use(x)"}},
		{"generic arrow", "const g = <T,>(v: T) => v;", []string{
			"enter_fn", "decl(T:generic_parameter)", "type_use(T)", "decl(v:parameter)", "use(v)", "exit_fn", "decl(g:variable)",
		}},
		{"function expression", "const h = function (p) { p };", []string{
			"enter_fn", "decl(p:parameter)", "enter_fn_body", "use(p)", "exit_fn", "decl(h:variable)",
		}},
		{"object literal", "o = { a: b, c, [d]: e, m(p) { } };", []string{
			"use(o)", "use(b)", "use(c)", "use(d)", "use(e)", "enter_fn", "decl(p:parameter)", "enter_fn_body", "exit_fn",
		}},
		{"member access", "a?.b(c)[d]!.e;", []string{"use(a)", "use(c)", "use(d)"}},
		{"as expression", "const v = w as T;", []string{"use(w)", "type_use(T)", "decl(v:variable)"}},
		{"shifts", "a >> b; c >>= d; e >= f; g > h; i >>> j;", []string{
			"use(a)", "use(b)", "use(c)", "use(d)", "use(e)", "use(f)", "use(g)", "use(h)", "use(i)", "use(j)",
		}},
		{"for of", "for (const x of xs) { f(x) }", []string{
			"enter_block", "use(xs)", "decl(x:variable)", "enter_block", "use(f)", "use(x)", "exit_block", "exit_block",
		}},
		{"for loop", "for (let i = 0; i < n; i++) {}", []string{
			"enter_block", "decl(i:variable)", "use(i)", "use(n)", "use(i)", "enter_block", "exit_block", "exit_block",
		}},
		{"try", "try { a } catch (e) { e } finally { b }", []string{
			"enter_block", "use(a)", "exit_block",
			"enter_block", "decl(e:variable)", "enter_block", "use(e)", "exit_block", "exit_block",
			"enter_block", "use(b)", "exit_block",
		}},
		{"switch", "switch (k) { case a: b; default: c }", []string{
			"use(k)", "enter_block", "use(a)", "use(b)", "use(c)", "exit_block",
		}},
		{"if else", "if (a) b; else { c }", []string{"use(a)", "use(b)", "enter_block", "use(c)", "exit_block"}},
		{"type alias", "type A = B;", []string{"type_use(B)"}},
		{"generic type alias", "type A<T> = B<T> | C;", []string{
			"enter_block", "decl(T:generic_parameter)", "type_use(B)", "type_use(T)", "type_use(C)", "exit_block",
		}},
		{"namespace", "namespace N.M { interface I { x } }", []string{
			"enter_block", "decl(I:interface)", "enter_interface", "prop(x)", "exit_interface", "exit_block",
		}},
		{"ambient module", `declare module "m" { export interface I {} }`, []string{
			"enter_block", "decl(I:interface)", "enter_interface", "exit_interface", "exit_block",
		}},
		{"imports", `import { A, B as C } from "m"; import D from 'd'; import * as E from "e"; import "side"; export { A } from "m"; export * from "n";`, nil},
		{"class is skipped", "class C extends D { m() { interface I {} } }", nil},
		{"enum is skipped", "enum E { A = x }", nil},
		{"label", "outer: for (;;) { break outer; }", []string{"enter_block", "enter_block", "exit_block", "exit_block"}},
		{"yield outside generator", "function f() { yield; }", []string{
			"decl(f:function)", "enter_fn", "enter_fn_body", "use(yield)", "exit_fn",
		}},
		{"yield in generator", "function* g() { yield x; }", []string{
			"decl(g:function)", "enter_fn", "enter_fn_body", "use(x)", "exit_fn",
		}},
		{"await in async", "async function f() { await p; }", []string{
			"decl(f:function)", "enter_fn", "enter_fn_body", "use(p)", "exit_fn",
		}},
		{"await outside async", "function f() { await(p) }", []string{
			"decl(f:function)", "enter_fn", "enter_fn_body", "use(await)", "use(p)", "exit_fn",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, tt.src)
			expectEvents(t, r, tt.events...)
			expectDiags(t, r)
		})
	}
}

func TestModuleEndsWithEndOfModule(t *testing.T) {
	r := parseSource(t, "")
	if got := r.rec.Strings(); len(got) != 1 || got[0] != "eom" {
		t.Fatalf("events = %v, want [eom]", got)
	}
}

func TestInterfacesInsideFunctions(t *testing.T) {
	src := "function f() { interface I { static x } }"
	r := parseSource(t, src)
	expectEvents(t, r,
		"decl(f:function)", "enter_fn", "enter_fn_body",
		"decl(I:interface)", "enter_interface", "prop(x)", "exit_interface",
		"exit_fn")
	expectDiags(t, r, diagAt(diag.ModStaticNotAllowed, "function f() { interface I { ", "static"))
}

func TestUnclosedCodeBlock(t *testing.T) {
	r := parseSource(t, "function f() { a ")
	expectDiags(t, r, diagAt(diag.SynUnclosedCodeBlock, "function f() ", "{"))
}

func TestParseInterfaceEntryPoint(t *testing.T) {
	fs, lx, bag := newInput("interface I { a; } const x = 1;")
	rec := visit.NewRecorder()
	res := ParseInterface(fs, lx, rec, Options{TypeScript: true, Reporter: &diag.BagReporter{Bag: bag}})
	if res.Bag != bag {
		t.Errorf("result bag is not the reporter's bag")
	}
	want := "decl(I:interface), enter_interface, prop(a), exit_interface"
	if got := rec.Summary(); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
	if next := lx.Peek(); next.Text != "const" {
		t.Errorf("stopped at %q, want const", next.Text)
	}

	fs, lx, _ = newInput("const x = 1;")
	p := New(fs, lx, nil, Options{TypeScript: true})
	if p.ParseInterface() {
		t.Errorf("ParseInterface() = true at a non-interface token")
	}
}
