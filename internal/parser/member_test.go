package parser

import (
	"testing"

	"tsiface/internal/diag"
)

const body = "interface I { "

// wrap returns the events of an interface I whose body produced inner.
func wrap(inner ...string) []string {
	out := []string{"decl(I:interface)", "enter_interface"}
	out = append(out, inner...)
	return append(out, "exit_interface")
}

func TestFields(t *testing.T) {
	tests := []struct {
		name   string
		member string
		events []string
		diags  []wantDiag
	}{
		{"plain", "a;b\nc }", []string{"prop(a)", "prop(b)", "prop(c)"}, nil},
		{"string key", "'fieldName'; }", []string{"prop(?)"}, nil},
		{"number key", "3.14; }", []string{"prop(?)"}, nil},
		{"computed key", "[x + y]; }", []string{"use(x)", "use(y)", "prop(?)"}, nil},
		{"optional", "fieldName?; }", []string{"prop(fieldName)"}, nil},
		{"optional newline", "fieldName?\nother }", []string{"prop(fieldName)", "prop(other)"}, nil},
		{"optional same line", "fieldName? other }", []string{"prop(fieldName)", "prop(other)"}, []wantDiag{
			diagAt(diag.SynMissingSemicolonAfterField, body+"fieldName?", ""),
		}},
		{"definite", "fieldName!; }", []string{"prop(fieldName)"}, []wantDiag{
			diagAt(diag.ModDefiniteAssignmentNotAllowed, body+"fieldName", "!"),
		}},
		{"typed", "field: Type; }", []string{"type_use(Type)", "prop(field)"}, nil},
		{"typed same line", "field: Type other }", []string{"type_use(Type)", "prop(field)", "prop(other)"}, []wantDiag{
			diagAt(diag.SynMissingSemicolonAfterField, body+"field: Type", ""),
		}},
		{"comma separated", "a: A, b: B }", []string{"type_use(A)", "prop(a)", "type_use(B)", "prop(b)"}, nil},
		{"initializer", "field = y; }", []string{"use(y)", "prop(field)"}, []wantDiag{
			diagAt(diag.ModInitializerNotAllowed, body+"field ", "="),
		}},
		{"union type", "f: A | B[] | { x: C }; }", []string{"type_use(A)", "type_use(B)", "type_use(C)", "prop(f)"}, nil},
		{"qualified type", "f: ns.T<U>; }", []string{"ns_use(ns)", "type_use(U)", "prop(f)"}, nil},
		{"function type", "f: (a: A) => R; }", []string{"enter_fn", "type_use(A)", "decl(a:parameter)", "type_use(R)", "exit_fn", "prop(f)"}, nil},
		{"typeof", "f: typeof v; }", []string{"use(v)", "prop(f)"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectEvents(t, r, wrap(tt.events...)...)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestMethodsAndAccessors(t *testing.T) {
	tests := []struct {
		name   string
		member string
		events []string
	}{
		{"method", "method(param) }", []string{"prop(method)", "enter_fn", "decl(param:parameter)", "exit_fn"}},
		{"typed method", "m(a: A, b?: B): R; }", []string{
			"prop(m)", "enter_fn", "type_use(A)", "decl(a:parameter)", "type_use(B)", "decl(b:parameter)", "type_use(R)", "exit_fn",
		}},
		{"getter", "get length(); }", []string{"prop(length)", "enter_fn", "exit_fn"}},
		{"setter", "set length(value); }", []string{"prop(length)", "enter_fn", "decl(value:parameter)", "exit_fn"}},
		{"string key", `"key"(); }`, []string{"prop(?)", "enter_fn", "exit_fn"}},
		{"number key", "42.0(); }", []string{"prop(?)", "enter_fn", "exit_fn"}},
		{"optional method", "m?(): void; }", []string{"prop(m)", "enter_fn", "exit_fn"}},
		{"generic method", "m<T>(x: T): T; }", []string{
			"prop(m)", "enter_fn", "decl(T:generic_parameter)", "type_use(T)", "decl(x:parameter)", "type_use(T)", "exit_fn",
		}},
		{"destructured params", "m({a, b}: P, [c]: Q); }", []string{
			"prop(m)", "enter_fn", "type_use(P)", "decl(a:parameter)", "decl(b:parameter)", "type_use(Q)", "decl(c:parameter)", "exit_fn",
		}},
		{"type predicate", "is(x: unknown): x is T; }", []string{"prop(is)", "enter_fn", "decl(x:parameter)", "type_use(T)", "exit_fn"}},
		{"computed method", "[Symbol.iterator](): It; }", []string{"use(Symbol)", "prop(?)", "enter_fn", "type_use(It)", "exit_fn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectEvents(t, r, wrap(tt.events...)...)
			expectDiags(t, r)
		})
	}
}

func TestGenericReturnTypeInsideFunctionScope(t *testing.T) {
	r := parseSource(t, "interface Getter<T> { get(): T; }")
	expectEvents(t, r,
		"decl(Getter:interface)", "enter_interface", "decl(T:generic_parameter)",
		"prop(get)", "enter_fn", "type_use(T)", "exit_fn",
		"exit_interface")
	expectDiags(t, r)
}

func TestMissingSemicolonAfterMethod(t *testing.T) {
	r := parseSource(t, body+"a() b() }")
	expectProps(t, r, "prop(a)", "prop(b)")
	expectDiags(t, r, diagAt(diag.SynMissingSemicolonAfterMethod, body+"a()", ""))
}

func TestIndexSignatures(t *testing.T) {
	tests := []struct {
		name   string
		member string
		events []string
		diags  []wantDiag
	}{
		{"typed", "[key: KeyType]: ValueType; }", []string{
			"enter_idx", "type_use(KeyType)", "decl(key:parameter)", "type_use(ValueType)", "exit_idx",
		}, nil},
		{"missing value type", "[key: KeyType]; }", []string{
			"enter_idx", "type_use(KeyType)", "decl(key:parameter)", "exit_idx",
		}, []wantDiag{diagAt(diag.SynIndexSignatureNeedsType, body+"[key: KeyType]", "")}},
		{"missing value type before method", "[key: KeyType]\n method(); }", []string{
			"enter_idx", "type_use(KeyType)", "decl(key:parameter)", "exit_idx",
			"prop(method)", "enter_fn", "exit_fn",
		}, []wantDiag{diagAt(diag.SynIndexSignatureNeedsType, body+"[key: KeyType]", "")}},
		{"written as a method", "[key: KeyType](param); }", []string{
			"enter_idx", "type_use(KeyType)", "decl(key:parameter)",
			"prop(?)", "enter_fn", "decl(param:parameter)", "exit_fn",
			"exit_idx",
		}, []wantDiag{diagAt(diag.SynIndexSignatureCannotBeMethod, body+"[key: KeyType]", "(")}},
		{"missing semicolon", "[key: KeyType]: ValueType method(); }", []string{
			"enter_idx", "type_use(KeyType)", "decl(key:parameter)", "type_use(ValueType)", "exit_idx",
			"prop(method)", "enter_fn", "exit_fn",
		}, []wantDiag{diagAt(diag.SynMissingSemicolonAfterIndexSignature, body+"[key: KeyType]: ValueType", "")}},
		{"readonly", "readonly [k: string]: V; }", []string{
			"enter_idx", "decl(k:parameter)", "type_use(V)", "exit_idx",
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectEvents(t, r, wrap(tt.events...)...)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestMethodBodies(t *testing.T) {
	tests := []struct {
		name   string
		member string
		diags  []wantDiag
	}{
		{"body", "method() { x } }", []wantDiag{
			diagAt(diag.SynMethodCannotContainBody, body+"method() ", "{"),
		}},
		{"arrow body", "method() => { x } }", []wantDiag{
			diagAt(diag.SynArrowOperatorOnMethod, body+"method() ", "=>"),
			diagAt(diag.SynMethodCannotContainBody, body+"method() => ", "{"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectEvents(t, r, wrap("prop(method)", "enter_fn", "enter_fn_body", "use(x)", "exit_fn")...)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestBodyWithoutParameterList(t *testing.T) {
	r := parseSource(t, body+"method { x } }")
	expectEvents(t, r, wrap("prop(method)", "enter_fn", "enter_fn_body", "use(x)", "exit_fn")...)
	expectDiags(t, r, diagAt(diag.SynMethodCannotContainBody, body+"method ", "{"))
}

func TestFunctionKeywordOnMethod(t *testing.T) {
	r := parseSource(t, body+"function f(); }")
	expectProps(t, r, "prop(f)")
	expectDiags(t, r, diagAt(diag.SynMethodUsesFunctionKeyword, body, "function"))

	for _, src := range []string{"function(); }", "function; }", "function?: T; }", "function }"} {
		r := parseSource(t, body+src)
		expectProps(t, r, "prop(function)")
		expectDiags(t, r)
	}
}

// keywordNamed lists keywords usable in every name position; `new` before
// `(` starts a construct signature instead.
func keywordNamed() []string {
	var out []string
	for _, kw := range keywords() {
		if kw != "new" {
			out = append(out, kw)
		}
	}
	return out
}

func TestKeywordsAsNames(t *testing.T) {
	for _, kw := range keywords() {
		t.Run(kw, func(t *testing.T) {
			forms := []struct {
				src    string
				events []string
			}{
				{"get " + kw + "() }", []string{"prop(" + kw + ")", "enter_fn", "exit_fn"}},
				{kw + " }", []string{"prop(" + kw + ")"}},
				{kw + "; }", []string{"prop(" + kw + ")"}},
				{kw + "?() }", []string{"prop(" + kw + ")", "enter_fn", "exit_fn"}},
				{kw + ": T; }", []string{"type_use(T)", "prop(" + kw + ")"}},
			}
			for _, f := range forms {
				r := parseSource(t, body+f.src)
				expectEvents(t, r, wrap(f.events...)...)
				expectDiags(t, r)
			}
		})
	}
	for _, kw := range keywordNamed() {
		r := parseSource(t, body+kw+"() }")
		expectEvents(t, r, wrap("prop("+kw+")", "enter_fn", "exit_fn")...)
		expectDiags(t, r)
	}
}

func TestEscapedKeywordName(t *testing.T) {
	r := parseSource(t, body+`\u0063lass(): void; }`)
	expectProps(t, r, "prop(class)")
	expectDiags(t, r)
}

func TestPrivateMembers(t *testing.T) {
	tests := []struct {
		member string
		props  []string
		diags  []wantDiag
	}{
		{"#method() }", []string{"prop(#method)"}, []wantDiag{diagAt(diag.ModPrivateNotAllowed, body, "#method")}},
		{"#field; }", []string{"prop(#field)"}, []wantDiag{diagAt(diag.ModPrivateNotAllowed, body, "#field")}},
		{"async static #method() }", []string{"prop(#method)"}, []wantDiag{
			diagAt(diag.ModAsyncNotAllowed, body, "async"),
			diagAt(diag.ModStaticNotAllowed, body+"async ", "static"),
			diagAt(diag.ModPrivateNotAllowed, body+"async static ", "#method"),
		}},
		{"readonly static #field; }", []string{"prop(#field)"}, []wantDiag{
			diagAt(diag.ModStaticNotAllowed, body+"readonly ", "static"),
			diagAt(diag.ModPrivateNotAllowed, body+"readonly static ", "#field"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectProps(t, r, tt.props...)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestStaticOnEveryKeywordName(t *testing.T) {
	staticDiag := diagAt(diag.ModStaticNotAllowed, body, "static")
	for _, kw := range keywords() {
		t.Run(kw, func(t *testing.T) {
			for _, form := range []string{
				"static " + kw + "() }",
				"static get " + kw + "() }",
				"static set " + kw + "(v) }",
				"static " + kw + "; }",
				"static readonly " + kw + "; }",
			} {
				r := parseSource(t, body+form)
				expectDiags(t, r, staticDiag)
			}
		})
	}
}

func TestStaticAcrossNewline(t *testing.T) {
	tests := []struct {
		member string
		props  []string
	}{
		{"static\nmethod(); }", []string{"prop(method)"}},
		{"static\nfield; }", []string{"prop(field)"}},
		{"static async\n method() }", []string{"prop(async)", "prop(method)"}},
		{"static field\n method() }", []string{"prop(field)", "prop(method)"}},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectProps(t, r, tt.props...)
			expectDiags(t, r, diagAt(diag.ModStaticNotAllowed, body, "static"))
		})
	}
}

func TestModifierCombinations(t *testing.T) {
	tests := []struct {
		member string
		diags  []wantDiag
	}{
		{"static field? method() }", []wantDiag{
			diagAt(diag.ModStaticNotAllowed, body, "static"),
			diagAt(diag.SynMissingSemicolonAfterField, body+"static field?", ""),
		}},
		{"async method() }", []wantDiag{diagAt(diag.ModAsyncNotAllowed, body, "async")}},
		{"async\nmethod() }", nil},
		{"*method() }", []wantDiag{diagAt(diag.ModGeneratorNotAllowed, body, "*")}},
		{"static *m() }", []wantDiag{
			diagAt(diag.ModStaticNotAllowed, body, "static"),
			diagAt(diag.ModGeneratorNotAllowed, body+"static ", "*"),
		}},
		{"async *m() }", []wantDiag{
			diagAt(diag.ModAsyncNotAllowed, body, "async"),
			diagAt(diag.ModGeneratorNotAllowed, body+"async ", "*"),
		}},
		{"static async m() }", []wantDiag{
			diagAt(diag.ModStaticNotAllowed, body, "static"),
			diagAt(diag.ModAsyncNotAllowed, body+"static ", "async"),
		}},
		{"async static m() }", []wantDiag{
			diagAt(diag.ModAsyncNotAllowed, body, "async"),
			diagAt(diag.ModStaticNotAllowed, body+"async ", "static"),
		}},
		{"async static *m() }", []wantDiag{
			diagAt(diag.ModAsyncNotAllowed, body, "async"),
			diagAt(diag.ModStaticNotAllowed, body+"async ", "static"),
			diagAt(diag.ModGeneratorNotAllowed, body+"async static ", "*"),
		}},
		{"public method(); }", []wantDiag{diagAt(diag.ModAccessSpecifierNotAllowed, body, "public")}},
		{"protected method(); }", []wantDiag{diagAt(diag.ModAccessSpecifierNotAllowed, body, "protected")}},
		{"private method(); }", []wantDiag{diagAt(diag.ModAccessSpecifierNotAllowed, body, "private")}},
		{"readonly method(); }", []wantDiag{diagAt(diag.ModReadonlyMethod, body, "readonly")}},
		{"readonly field: T; }", nil},
		{"async field; }", nil},
	}
	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestModifiersWithoutName(t *testing.T) {
	r := parseSource(t, body+"static }")
	expectProps(t, r, "prop(static)")
	expectDiags(t, r)

	r = parseSource(t, body+"static * }")
	expectProps(t, r, "prop(?)")
	expectDiags(t, r,
		diagAt(diag.SynUnexpectedToken, body+"static * ", "}"),
		diagAt(diag.ModStaticNotAllowed, body, "static"))
}

func TestStaticBlock(t *testing.T) {
	r := parseSource(t, body+"static { console.log('hello'); } }")
	expectEvents(t, r, wrap("enter_block", "use(console)", "exit_block")...)
	expectDiags(t, r, diagAt(diag.SynStaticBlockNotAllowed, body, "static"))
}

func TestSignatures(t *testing.T) {
	tests := []struct {
		name   string
		member string
		events []string
		diags  []wantDiag
	}{
		{"call", "(param); }", []string{"prop(?)", "enter_fn", "decl(param:parameter)", "exit_fn"}, nil},
		{"generator call", "*(param); }", []string{"prop(?)", "enter_fn", "decl(param:parameter)", "exit_fn"}, []wantDiag{
			diagAt(diag.ModGeneratorNotAllowed, body, "*"),
		}},
		{"generic call", "<T>(param); }", []string{
			"prop(?)", "enter_fn", "decl(T:generic_parameter)", "decl(param:parameter)", "exit_fn",
		}, nil},
		{"construct", "new (param): T; }", []string{
			"prop(?)", "enter_fn", "decl(param:parameter)", "type_use(T)", "exit_fn",
		}, nil},
		{"generic construct", "new <T>(): T; }", []string{
			"prop(?)", "enter_fn", "decl(T:generic_parameter)", "type_use(T)", "exit_fn",
		}, nil},
		{"named new", "new?(): T; }", []string{"prop(new)", "enter_fn", "type_use(T)", "exit_fn"}, nil},
		{"getter named new", "get new(); }", []string{"prop(new)", "enter_fn", "exit_fn"}, nil},
		{"construct with body", "new () {} }", []string{"prop(?)", "enter_fn", "enter_fn_body", "exit_fn"}, []wantDiag{
			diagAt(diag.SynMethodCannotContainBody, body+"new () ", "{"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseSource(t, body+tt.member)
			expectEvents(t, r, wrap(tt.events...)...)
			expectDiags(t, r, tt.diags...)
		})
	}
}

func TestReportedFixesReachReporter(t *testing.T) {
	r := parseSource(t, "interface I { static a: T }")
	items := r.bag.Items()
	if len(items) != 1 || items[0].Code != diag.ModStaticNotAllowed {
		t.Fatalf("diagnostics = %s", diagnosticsSummary(r.bag))
	}
	fixes := items[0].Fixes
	if len(fixes) != 1 || fixes[0].Title != "remove 'static'" {
		t.Fatalf("fixes = %+v", fixes)
	}
	edit := fixes[0].Edits[0]
	if got := r.src[edit.Span.Start:edit.Span.End]; got != "static" || edit.NewText != "" {
		t.Errorf("fix edit replaces %q with %q", got, edit.NewText)
	}
}
