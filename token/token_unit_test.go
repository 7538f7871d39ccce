package token

import "testing"

func TestLookupIdent_Keyword(t *testing.T) {
	if got := LookupIdent("class"); got != CLASS {
		t.Fatalf("expected CLASS, got %s", got)
	}
	if got := LookupIdent("while"); got != WHILE {
		t.Fatalf("expected WHILE, got %s", got)
	}
}

func TestLookupIdent_PlainIdentifier(t *testing.T) {
	if got := LookupIdent("counter"); got != IDENTIFIER {
		t.Fatalf("expected IDENTIFIER, got %s", got)
	}
}

func TestLookupParserKeyword(t *testing.T) {
	kind, ok := LookupParserKeyword("break")
	if !ok || kind != BREAK {
		t.Fatalf("expected BREAK, got %s ok=%v", kind, ok)
	}
	if _, ok := LookupParserKeyword("notakeyword"); ok {
		t.Fatalf("expected ok=false for non-keyword")
	}
}

func TestLookupParserKeyword_NotRecognisedByScanner(t *testing.T) {
	// elif/break/continue/lambda/try/throw must NOT be in the scanner's
	// own table -- they come back as IDENTIFIER from LookupIdent.
	for _, word := range []string{"elif", "break", "continue", "lambda", "try", "throw"} {
		if got := LookupIdent(word); got != IDENTIFIER {
			t.Fatalf("%q: expected scanner to report IDENTIFIER, got %s", word, got)
		}
	}
}
