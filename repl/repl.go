// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface. It connects the user input
//          stream to the scan/parse/resolve/evaluate pipeline (§2) and keeps
//          a persistent global Interpreter across lines, the way the
//          teacher's REPL keeps a persistent object.Environment.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/amoghasbhardwaj/slang/ast"
	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/interp"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
	"github.com/amoghasbhardwaj/slang/resolver"
	"github.com/amoghasbhardwaj/slang/token"
)

// ----------------------------------------------------------------------------
// UI CONSTANTS & CONFIGURATION
// ----------------------------------------------------------------------------

const (
	PROMPT = ">> "
	LOGO   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ____  _                                           ┃
┃ / ___|| | __ _ _ __   __ _                         ┃
┃ \___ \| |/ _` + "`" + ` | '_ \ / _` + "`" + ` |                        ┃
┃  ___) | | (_| | | | | (_| |                        ┃
┃ |____/|_|\__,_|_| |_|\__, |                        ┃
┃                      |___/                         ┃
┃                                                    ┃
┃ slang v0.1 -- a small class-based scripting lang   ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// ANSI Color Codes for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// ----------------------------------------------------------------------------
// REPL LOGIC
// ----------------------------------------------------------------------------

// Start launches the Read-Eval-Print Loop. It listens to in, evaluates code,
// and writes results to out. The Interpreter persists across lines so
// variables, functions, and classes survive between inputs.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	accum := errors.NewAccumulator()
	interpreter := interp.New(nil, out, in, accum)
	debugMode := false

	fmt.Fprint(out, LOGO)
	printHelp(out)

	for {
		fmt.Fprint(out, Cyan+PROMPT+Reset)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".exit":
				fmt.Fprintln(out, Yellow+"Goodbye!"+Reset)
				return
			case ".clear":
				accum.Reset()
				interpreter = interp.New(nil, out, in, accum)
				fmt.Fprintln(out, Green+"Environment cleared (memory reset)."+Reset)
				continue
			case ".debug":
				debugMode = !debugMode
				status := "DISABLED"
				if debugMode {
					status = "ENABLED"
				}
				fmt.Fprintf(out, Gray+"Debug mode %s\n"+Reset, status)
				continue
			case ".help":
				printHelp(out)
				continue
			default:
				fmt.Fprintf(out, Red+"Unknown command: %s. Type .help for info.\n"+Reset, line)
				continue
			}
		}

		if debugMode {
			printTokens(out, line)
		}

		accum.Reset()
		tokens := lexer.New(line, accum).ScanTokens()
		statements := parser.New(tokens, accum).Parse()

		if debugMode {
			printAST(out, statements)
		}

		if accum.HadCompileError() {
			printDiagnostics(out, accum)
			continue
		}

		r := resolver.New(accum)
		locals := r.Resolve(statements)
		if debugMode {
			fmt.Fprint(out, Gray+r.DumpLabels()+Reset)
		}
		if accum.HadCompileError() {
			printDiagnostics(out, accum)
			continue
		}

		interpreter.SetLocals(locals)
		result, err := interpreter.InterpretLine(statements)
		if err != nil {
			fmt.Fprintf(out, Red+Bold+"Runtime error: "+Reset+Red+"%s\n"+Reset, err)
			continue
		}
		if result != nil {
			printEvalResult(out, result)
		}
	}
}

// ----------------------------------------------------------------------------
// HELPER FUNCTIONS
// ----------------------------------------------------------------------------

func printHelp(out io.Writer) {
	fmt.Fprintln(out, Gray+"Commands:")
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .clear  Reset memory")
	fmt.Fprintln(out, "  .debug  Toggle verbose token/AST output")
	fmt.Fprintln(out, "  .help   Show this message"+Reset)
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, line string) {
	fmt.Fprintln(out, Gray+"┌── [ TOKENS ] ──────────────────────────────────────────┐"+Reset)
	tmp := errors.NewAccumulator()
	for _, tok := range lexer.New(line, tmp).ScanTokens() {
		if tok.Kind == token.EOF {
			continue
		}
		fmt.Fprintf(out, "│ %-15s : %s\n", tok.Kind, tok.Lexeme)
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printAST(out io.Writer, statements []ast.Statement) {
	fmt.Fprintln(out, Gray+"┌── [ AST TREE ] ────────────────────────────────────────┐"+Reset)
	for _, s := range statements {
		if str := s.String(); str != "" {
			fmt.Fprintf(out, "%s\n", str)
		}
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printDiagnostics(out io.Writer, accum *errors.Accumulator) {
	fmt.Fprintln(out, Red+Bold+"Whoops! Compile errors:"+Reset)
	for _, d := range accum.Diagnostics() {
		fmt.Fprintf(out, Red+"  x %s\n"+Reset, d.Format())
	}
}

// printEvalResult formats the result of the last bare expression, colored by
// its runtime type, the way the teacher's REPL color-coded object.Object.
func printEvalResult(out io.Writer, v interp.Value) {
	if v == nil {
		return
	}
	str := interp.Stringify(v)

	switch val := v.(type) {
	case float64, int32:
		fmt.Fprintf(out, Yellow+"%s\n"+Reset, str)
	case bool:
		color := Green
		if !val {
			color = Red
		}
		fmt.Fprintf(out, color+"%s\n"+Reset, str)
	case string:
		fmt.Fprintf(out, Green+"%s\n"+Reset, str)
	case *interp.List:
		fmt.Fprintf(out, Blue+"%s\n"+Reset, str)
	case *interp.Class, *interp.Instance:
		fmt.Fprintf(out, Cyan+"%s\n"+Reset, str)
	case interp.Callable:
		fmt.Fprintf(out, Purple+"%s\n"+Reset, str)
	default:
		fmt.Fprintf(out, "%s\n", str)
	}
}
