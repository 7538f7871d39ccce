// ==============================================================================================
// FILE: irgen/irgen.go
// ==============================================================================================
// PACKAGE: irgen
// PURPOSE: The informative LLVM textual IR backend (§6.5). Spec.md marks
//          this backend's emission details as informative rather than
//          normative -- there is no bytecode VM or JIT to drive it, only a
//          `slang build` command that writes a `.ll` module a reader could
//          feed to `llc`/`lli` by hand. Emission is done with strings.Builder
//          rather than cgo LLVM bindings (e.g. tinygo.org/x/go-llvm, used
//          elsewhere in the example pack): that dependency needs a system
//          LLVM install to even compile against, which would make this
//          package unbuildable in the absence of one, so the textual
//          emitter the original C++ IRgenerator itself used is the better
//          fit here.
// ==============================================================================================

package irgen

import (
	"fmt"
	"strings"

	"github.com/amoghasbhardwaj/slang/ast"
)

// Module accumulates the textual LLVM IR for one compiled program.
type Module struct {
	name    string
	strings []string // string-literal globals, in declaration order
	body    strings.Builder
}

// NewModule creates an empty module named name (conventionally "lox",
// matching the original C++ IRgenerator's module identifier).
func NewModule(name string) *Module {
	return &Module{name: name}
}

// Generate walks statements and emits a `main` function that evaluates
// every top-level `print` statement as a call to the C library `printf`,
// per §6.5's informative lowering: only a `print` whose operand is a
// literal is lowered. A `print` of any other expression, and every other
// statement, emits no IR (see generateStatement and emitPrint).
func (m *Module) Generate(statements []ast.Statement) {
	for _, stmt := range statements {
		m.generateStatement(stmt)
	}
}

func (m *Module) generateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.PrintStmt:
		m.emitPrint(s.Expression)
	case *ast.ExpressionStmt:
		// Side-effect-only expressions outside of `print` have no
		// straight-line IR lowering in this informative backend (classes,
		// closures, and control flow are intentionally out of scope for
		// `slang build` -- see DESIGN.md's irgen/ section).
	default:
		// Anything else (control flow, declarations) is not lowered;
		// `slang build` only emits IR for the straight-line print
		// statements of a program, matching §6.5's "informative, not
		// normative" framing.
	}
}

func (m *Module) emitPrint(expr ast.Expression) {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return
	}
	str, isString := lit.Value.(string)
	if !isString {
		str = fmt.Sprintf("%v", lit.Value)
	}
	idx := len(m.strings)
	m.strings = append(m.strings, str)
	fmt.Fprintf(&m.body, "  %%call%d = call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([%d x i8], [%d x i8]* @.str%d, i32 0, i32 0))\n",
		idx, len(str)+2, len(str)+2, idx)
}

// String renders the complete textual module: global string constants,
// the printf declaration, and a `main` that runs the emitted body and
// returns 0.
func (m *Module) String() string {
	var out strings.Builder

	fmt.Fprintf(&out, "; ModuleID = '%s'\n", m.name)
	fmt.Fprintf(&out, "source_filename = %q\n\n", m.name)

	for i, s := range m.strings {
		escaped, length := escapeLLVMString(s)
		fmt.Fprintf(&out, "@.str%d = private unnamed_addr constant [%d x i8] c\"%s\"\n", i, length, escaped)
	}
	out.WriteString("\n")

	out.WriteString("declare i32 @printf(i8*, ...)\n\n")

	out.WriteString("define i32 @main() {\n")
	out.WriteString("entry:\n")
	out.WriteString(m.body.String())
	out.WriteString("  ret i32 0\n")
	out.WriteString("}\n")

	return out.String()
}

// escapeLLVMString renders s as an LLVM `c"..."` byte-string body, with a
// trailing "\0A\00" newline-plus-terminator the same way the original
// IRgenerator appended a newline to every emitted print, and returns the
// byte length LLVM's array type needs (including that terminator).
func escapeLLVMString(s string) (escaped string, length int) {
	var sb strings.Builder
	for _, b := range []byte(s) {
		switch b {
		case '"', '\\':
			fmt.Fprintf(&sb, "\\%02X", b)
		default:
			if b < 0x20 || b >= 0x7f {
				fmt.Fprintf(&sb, "\\%02X", b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteString("\\0A\\00") // newline + NUL terminator
	return sb.String(), len(s) + 2
}
