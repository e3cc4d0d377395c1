package fuzztests

import (
	"testing"
)

const (
	maxFuzzInput = 1 << 16
	maxSeedBytes = 64 << 10
)

var seeds = []string{
	"",
	"interface I {}",
	"interface I { a: string; b?: number, c!: T }",
	"interface I extends A, B.C<D> { readonly [key: string]: V }",
	"interface I { get x(): T; set x(v: T); }",
	"interface I { <T>(a: T): T; new (s: string): I }",
	"interface I { static m(); public p; async *g() }",
	"interface I { a: T b: U }",
	"interface I { function(): void; new: number }",
	"interface I extends , { }",
	"interface I<T = {}> { m<U extends T>(x: U): Array<U>",
	"declare function f(): void;\nlet x = (a, b) => a ? b : x;",
	"async function* g() { yield await f(); }",
	"namespace ns { interface Inner { p: Outer } }",
	"class C { x = 1 }\nenum E { A, B }\ntype T<U> = U[]",
	"interface I { /* c */ a: T // tail\n b: U }",
	"{ { { ( [ < > ] ) } } }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
