// ==============================================================================================
// FILE: repl/repl_unit_test.go
// ==============================================================================================
// PURPOSE: Unit tests for basic REPL functionality.
//          Verifies that commands work and simple expressions echo results.
// ==============================================================================================

package repl

import (
	"bytes"
	"strings"
	"testing"
)

// Helper to simulate a REPL session
func runSession(input string) string {
	in := strings.NewReader(input)
	var out bytes.Buffer
	Start(in, &out)
	return out.String()
}

func TestREPL_Arithmetic(t *testing.T) {
	output := runSession("10 + 20;\n.exit")
	if !strings.Contains(output, "30") {
		t.Errorf("REPL failed simple math. Output:\n%s", output)
	}
}

func TestREPL_VariablePersistence(t *testing.T) {
	input := "var x = 50;\nx = x + 10;\n.exit"
	output := runSession(input)
	if !strings.Contains(output, "60") {
		t.Errorf("REPL failed variable persistence. Output:\n%s", output)
	}
}

func TestREPL_Commands(t *testing.T) {
	input := ".debug\nvar x = 10;\n.clear\nx;\n.exit"
	output := runSession(input)

	if !strings.Contains(output, "[ TOKENS ]") {
		t.Error("Debug mode did not print tokens")
	}
	if !strings.Contains(output, "[ AST TREE ]") {
		t.Error("Debug mode did not print AST")
	}
	if !strings.Contains(output, "undefined variable") {
		t.Error("Environment was not cleared correctly")
	}
}
