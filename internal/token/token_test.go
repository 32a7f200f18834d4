package token

import "testing"

func TestLookupKeywordRecognizesReservedWords(t *testing.T) {
	cases := map[string]Kind{
		"let": KwLet, "fn": KwFn, "if": KwIf, "else": KwElse,
		"return": KwReturn, "extern": KwExtern, "true": KwTrue, "false": KwFalse,
	}
	for word, want := range cases {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (%v, true)", word, got, ok, want)
		}
	}
}

func TestLookupKeywordRejectsPlainIdentifiers(t *testing.T) {
	if _, ok := LookupKeyword("x"); ok {
		t.Fatalf("LookupKeyword(%q) unexpectedly matched a keyword", "x")
	}
}

func TestIsCompoundAssign(t *testing.T) {
	for _, k := range []Kind{AddEq, SubEq, MulEq, DivEq} {
		if !(Token{Kind: k}).IsCompoundAssign() {
			t.Errorf("Kind %v should be a compound-assignment operator", k)
		}
	}
	if (Token{Kind: Equals}).IsCompoundAssign() {
		t.Fatalf("plain '=' should not be a compound-assignment operator")
	}
}

func TestIsComparison(t *testing.T) {
	for _, k := range []Kind{Lt, Gt, Lte, Gte, Eq, Neq} {
		if !(Token{Kind: k}).IsComparison() {
			t.Errorf("Kind %v should be a comparison operator", k)
		}
	}
	if (Token{Kind: Plus}).IsComparison() {
		t.Fatalf("'+' should not be a comparison operator")
	}
}
