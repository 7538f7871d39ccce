// ==============================================================================================
// FILE: wasm/wasm_main.go
// BUILD: GOOS=js GOARCH=wasm go build -o main.wasm wasm/wasm_main.go
// ==============================================================================================
// PURPOSE: A browser playground entry point, adapted from the teacher's own
//          js/syscall bridge. Runs the same scan/parse/resolve/evaluate
//          pipeline as cmd/slang run, with stdout captured into a buffer
//          instead of written to a file descriptor.
// ==============================================================================================

//go:build js && wasm

package main

import (
	"bytes"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/interp"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
	"github.com/amoghasbhardwaj/slang/resolver"
)

func main() {
	c := make(chan struct{}, 0)

	js.Global().Set("runSlang", js.FuncOf(runCode))

	fmt.Println("slang WASM engine loaded.")
	<-c
}

// runCode is the bridge between JS and Go: JS passes a source string, Go
// returns a {logs, error} object built from the same diagnostics
// cmd/slang's run command would print to stderr.
func runCode(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return map[string]interface{}{"error": "missing source argument"}
	}
	source := args[0].String()

	accum := errors.NewAccumulator()
	tokens := lexer.New(source, accum).ScanTokens()
	statements := parser.New(tokens, accum).Parse()

	if accum.HadCompileError() {
		return map[string]interface{}{"error": formatDiagnostics(accum)}
	}

	r := resolver.New(accum)
	locals := r.Resolve(statements)
	if accum.HadCompileError() {
		return map[string]interface{}{"error": formatDiagnostics(accum)}
	}

	var stdout bytes.Buffer
	in := interp.New(locals, &stdout, strings.NewReader(""), accum)
	if err := in.Interpret(statements); err != nil {
		return map[string]interface{}{
			"logs":  stdout.String(),
			"error": err.Error(),
		}
	}

	return map[string]interface{}{"logs": stdout.String()}
}

func formatDiagnostics(accum *errors.Accumulator) string {
	var sb strings.Builder
	for _, d := range accum.Diagnostics() {
		sb.WriteString(d.Format())
		sb.WriteString("\n")
	}
	return sb.String()
}
