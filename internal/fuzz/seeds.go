package fuzztests

import "testing"

const maxFuzzInput = 16 << 10 // 16 KiB: длиннее входы обрезаются

var languageSeeds = []string{
	``,
	`type A = nat;`,
	`type A = record { a : nat; b : opt text };`,
	`type List = opt record { head : nat; tail : List };`,
	`type Tree = variant { leaf : int; node : record { left : Tree; right : Tree } };`,
	`type T = record { nat; text; 5 : bool; "quoted name" : blob };`,
	`type V = variant { ok; err : text; 0x10 : null };`,
	`type F = func (x : nat, y : vec nat8) -> (opt principal) query;`,
	`type S = service { ping : () -> () oneway; get : F };`,
	`import "other.did"; service : { foo : (nat) -> (text) query; }`,
	`service Counter : (init : nat) -> { inc : () -> (); read : () -> (nat) query };`,
	`service : S;`,
	"type A = record { a nat };",
	"type A = B; type B = A;",
	"/* unterminated",
	`type T = text; // trailing comment`,
	"type X = \"\\u{1F600}\";",
	`type Deep = opt opt opt opt opt opt opt opt vec vec vec vec nat;`,
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
