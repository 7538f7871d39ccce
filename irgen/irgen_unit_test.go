package irgen

import (
	"strings"
	"testing"

	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/token"
)

func TestModule_GenerateEmitsPrintfCallForStringLiteral(t *testing.T) {
	m := NewModule("lox")
	m.Generate([]ast.Statement{
		&ast.PrintStmt{Expression: &ast.Literal{Token: token.Token{Lexeme: `"hi"`}, Value: "hi"}},
	})

	out := m.String()
	if !strings.Contains(out, "@printf") {
		t.Fatalf("expected a printf declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "call i32 (i8*, ...) @printf") {
		t.Fatalf("expected a printf call, got:\n%s", out)
	}
	if !strings.Contains(out, "define i32 @main()") {
		t.Fatalf("expected a main function, got:\n%s", out)
	}
	if !strings.Contains(out, "ret i32 0") {
		t.Fatalf("expected main to return 0, got:\n%s", out)
	}
}

func TestModule_GenerateSkipsNonLiteralPrintsWithoutCrashing(t *testing.T) {
	m := NewModule("lox")
	m.Generate([]ast.Statement{
		&ast.PrintStmt{Expression: &ast.Variable{Name: token.Token{Lexeme: "x"}}},
	})
	out := m.String()
	if strings.Contains(out, "@printf(i8* getelementptr") {
		t.Fatalf("did not expect a printf call for a non-literal print, got:\n%s", out)
	}
}

func TestEscapeLLVMString_EscapesQuotesAndBackslashes(t *testing.T) {
	escaped, length := escapeLLVMString(`say "hi"\`)
	if strings.Contains(escaped, `"`) {
		t.Fatalf("expected no raw quote characters in escaped output, got %q", escaped)
	}
	if length != len(`say "hi"\`)+2 {
		t.Fatalf("expected length to include the newline+NUL terminator, got %d", length)
	}
}
