package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"interface": KwInterface,
		"extends":   KwExtends,
		"static":    KwStatic,
		"readonly":  KwReadonly,
		"get":       KwGet,
		"function":  KwFunction,
		"new":       KwNew,
		"typeof":    KwTypeof,
		"keyof":     KwKeyof,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, s := range []string{"Interface", "STATIC", "identifier", "toString", "Array"} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordTableRoundTrip(t *testing.T) {
	for lexeme, k := range keywords {
		if k.String() != lexeme {
			t.Errorf("%q maps to %v", lexeme, k)
		}
		if !k.IsKeyword() {
			t.Errorf("%q is not flagged as a keyword", lexeme)
		}
	}
}

func TestReservedIn(t *testing.T) {
	cases := map[string]Reservation{
		"await":     ReservedInAsync,
		"yield":     ReservedInGenerator,
		"if":        ReservedAlways,
		"class":     ReservedAlways,
		"let":       ReservedAlways,
		"interface": ReservedAlways,
		"string":    NotReserved,
		"type":      NotReserved,
		"Foo":       NotReserved,
	}
	for name, want := range cases {
		if got := ReservedIn(name); got != want {
			t.Errorf("ReservedIn(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestIsPredefinedType(t *testing.T) {
	for _, name := range []string{"string", "number", "any", "never", "unknown", "void"} {
		if !IsPredefinedType(name) {
			t.Errorf("IsPredefinedType(%q) = false", name)
		}
	}
	for _, name := range []string{"String", "Array", "T"} {
		if IsPredefinedType(name) {
			t.Errorf("IsPredefinedType(%q) = true", name)
		}
	}
}
