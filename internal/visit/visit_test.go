package visit

import (
	"strings"
	"testing"

	"tsiface/internal/source"
)

func id(name string) Identifier {
	return Identifier{Name: name, Span: source.Span{Start: 1, End: uint32(1 + len(name))}}
}

func TestRecorderStrings(t *testing.T) {
	r := NewRecorder()
	r.VariableDeclaration(id("I"), VarInterface)
	r.EnterInterfaceScope()
	r.VariableDeclaration(id("T"), VarGenericParameter)
	r.VariableTypeUse(id("Base"))
	r.VariableNamespaceUse(id("ns"))
	r.PropertyDeclaration(nil)
	n := id("m")
	r.PropertyDeclaration(&n)
	r.EnterFunctionScope()
	r.VariableDeclaration(id("p"), VarParameter)
	r.EnterFunctionScopeBody()
	r.VariableUse(id("x"))
	r.ExitFunctionScope()
	r.EnterIndexSignatureScope()
	r.ExitIndexSignatureScope()
	r.ExitInterfaceScope()
	r.EndOfModule()

	want := "decl(I:interface), enter_interface, decl(T:generic_parameter), type_use(Base), ns_use(ns), " +
		"prop(?), prop(m), enter_fn, decl(p:parameter), enter_fn_body, use(x), exit_fn, enter_idx, exit_idx, " +
		"exit_interface, eom"
	if got := r.Summary(); got != want {
		t.Fatalf("Summary():\n got %s\nwant %s", got, want)
	}
	if err := CheckBalance(r.Events); err != nil {
		t.Fatalf("CheckBalance: %v", err)
	}
	r.Reset()
	if len(r.Events) != 0 {
		t.Fatalf("Reset kept %d events", len(r.Events))
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	m := Multi{a, Nop{}, b}
	m.EnterBlockScope()
	m.VariableUse(id("x"))
	m.ExitBlockScope()
	if a.Summary() != b.Summary() || a.Summary() != "enter_block, use(x), exit_block" {
		t.Fatalf("a = %q, b = %q", a.Summary(), b.Summary())
	}
}

func TestCheckBalance(t *testing.T) {
	ev := func(kinds ...EventKind) []Event {
		out := make([]Event, len(kinds))
		for i, k := range kinds {
			out[i] = Event{Kind: k}
		}
		return out
	}
	tests := []struct {
		name   string
		events []Event
		errSub string
	}{
		{"empty", nil, ""},
		{"nested", ev(EvEnterInterfaceScope, EvEnterIndexSignatureScope, EvEnterFunctionScope, EvExitFunctionScope, EvExitIndexSignatureScope, EvExitInterfaceScope), ""},
		{"unclosed", ev(EvEnterInterfaceScope, EvEnterFunctionScope, EvExitFunctionScope), "left open"},
		{"crossed", ev(EvEnterInterfaceScope, EvEnterFunctionScope, EvExitInterfaceScope), "closes"},
		{"stray exit", ev(EvExitBlockScope), "without a matching enter"},
		{"body outside fn", ev(EvEnterInterfaceScope, EvEnterFunctionScopeBody), "outside a function scope"},
		{"two bodies", ev(EvEnterFunctionScope, EvEnterFunctionScopeBody, EvEnterFunctionScopeBody), "second function body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBalance(tt.events)
			switch {
			case tt.errSub == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.errSub != "" && (err == nil || !strings.Contains(err.Error(), tt.errSub)):
				t.Fatalf("error = %v, want substring %q", err, tt.errSub)
			}
		})
	}
}

func TestReplayReproducesEvents(t *testing.T) {
	src := NewRecorder()
	src.VariableDeclaration(id("I"), VarInterface)
	src.EnterInterfaceScope()
	src.PropertyDeclaration(nil)
	n := id("m")
	src.PropertyDeclaration(&n)
	src.EnterBlockScope()
	src.VariableUse(id("x"))
	src.ExitBlockScope()
	src.ExitInterfaceScope()

	dst := NewRecorder()
	Replay(dst, src.Events...)
	if got, want := dst.Summary(), src.Summary(); got != want {
		t.Fatalf("Replay:\n got %s\nwant %s", got, want)
	}
	if dst.Events[2].HasName {
		t.Errorf("unnamed property gained a name after replay")
	}
}
