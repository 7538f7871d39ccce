package lexer

import (
	"testing"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/token"
)

func TestNextToken_Punctuation(t *testing.T) {
	input := `(){}[],.^;*\%:`
	want := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.LEFT_BRACK, token.RIGHT_BRACK, token.COMMA, token.DOT, token.CARET,
		token.SEMICOLON, token.STAR, token.BACKSLASH, token.PERCENT, token.COLON,
		token.EOF,
	}

	l := New(input, nil)
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, k, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_TwoCharacterOperators(t *testing.T) {
	input := `!= == <= >= ++ -- ! = < > - +`
	want := []token.Kind{
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.PLUS_PLUS, token.MINUS_MINUS, token.BANG, token.EQUAL, token.LESS,
		token.GREATER, token.MINUS, token.PLUS, token.EOF,
	}

	l := New(input, nil)
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, k, tok.Kind, tok.Lexeme)
		}
	}
}

func TestNextToken_KeywordsAndIdentifiers(t *testing.T) {
	input := `var x = 1; fun f() { if (x) { return x; } else { print x; } }`
	l := New(input, nil)

	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}

	mustContain := []token.Kind{token.VAR, token.FUN, token.IF, token.RETURN, token.ELSE, token.PRINT}
	for _, want := range mustContain {
		found := false
		for _, k := range kinds {
			if k == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected kind %s somewhere in token stream, got %v", want, kinds)
		}
	}
}

func TestNextToken_IntegerVsNumber(t *testing.T) {
	l := New("42 3.14", nil)

	intTok := l.NextToken()
	if intTok.Kind != token.INTEGER {
		t.Fatalf("expected INTEGER, got %s", intTok.Kind)
	}
	if v, ok := intTok.Literal.(int32); !ok || v != 42 {
		t.Fatalf("expected int32(42), got %#v", intTok.Literal)
	}

	numTok := l.NextToken()
	if numTok.Kind != token.NUMBER {
		t.Fatalf("expected NUMBER, got %s", numTok.Kind)
	}
	if v, ok := numTok.Literal.(float64); !ok || v != 3.14 {
		t.Fatalf("expected float64(3.14), got %#v", numTok.Literal)
	}
}

func TestNextToken_DotIsNotALeadingDecimalPoint(t *testing.T) {
	// Unlike Eloquence, this grammar has no leading-dot float literals --
	// "." is always DOT, even directly before a digit.
	l := New(".5", nil)
	tok := l.NextToken()
	if tok.Kind != token.DOT {
		t.Fatalf("expected DOT, got %s", tok.Kind)
	}
}

func TestNextToken_String(t *testing.T) {
	l := New(`"hello world"`, nil)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}
	if tok.Literal != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", tok.Literal)
	}
}

func TestNextToken_UnterminatedStringReportsAndReachesEOF(t *testing.T) {
	accum := errors.NewAccumulator()
	l := New(`"never closed`, accum)

	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Kind)
	}
	if !accum.HadCompileError() {
		t.Fatalf("expected unterminated string to report a compile error")
	}

	eof := l.NextToken()
	if eof.Kind != token.EOF {
		t.Fatalf("expected EOF after unterminated string, got %s", eof.Kind)
	}
}

func TestNextToken_LineComment(t *testing.T) {
	l := New("var x = 1; // trailing comment\nvar y = 2;", nil)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	// Two VAR declarations, no ILLEGAL tokens from the comment text.
	count := 0
	for _, k := range kinds {
		if k == token.VAR {
			count++
		}
		if k == token.ILLEGAL {
			t.Fatalf("comment leaked an ILLEGAL token")
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 VAR tokens, got %d", count)
	}
}

func TestNextToken_BlockCommentTracksNewlines(t *testing.T) {
	l := New("/* line one\nline two\nline three */ var x = 1;", nil)
	tok := l.NextToken()
	if tok.Kind != token.VAR {
		t.Fatalf("expected VAR after block comment, got %s", tok.Kind)
	}
	if tok.Line != 3 {
		t.Fatalf("expected block comment to advance to line 3, got %d", tok.Line)
	}
}

func TestNextToken_UnterminatedBlockCommentReports(t *testing.T) {
	accum := errors.NewAccumulator()
	l := New("/* never closed", accum)
	tok := l.NextToken()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
	if !accum.HadCompileError() {
		t.Fatalf("expected unterminated block comment to report a compile error")
	}
}

func TestNextToken_UnexpectedCharacterReportsButContinues(t *testing.T) {
	accum := errors.NewAccumulator()
	l := New("@ var", accum)

	illegal := l.NextToken()
	if illegal.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", illegal.Kind)
	}
	if !accum.HadCompileError() {
		t.Fatalf("expected unexpected character to report a compile error")
	}

	next := l.NextToken()
	if next.Kind != token.VAR {
		t.Fatalf("expected scanning to continue past the bad character, got %s", next.Kind)
	}
}

func TestScanTokens_EndsInEOF(t *testing.T) {
	tokens := New("1 + 2", nil).ScanTokens()
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected token stream to end in EOF, got %v", tokens)
	}
}
