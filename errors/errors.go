// ==============================================================================================
// FILE: errors/errors.go
// ==============================================================================================
// PACKAGE: errors
// PURPOSE: Process-wide diagnostic accumulation for the scan/parse/resolve
//          strata (§4.7) plus pretty-printing of a single runtime error with
//          source context, grounded on go-dws's internal/errors formatter.
// ==============================================================================================

package errors

import (
	"fmt"
	"io"
	"strings"
)

// Diagnostic is one recorded compile-time (scan/parse/resolve) problem.
type Diagnostic struct {
	Line    int
	Where   string // short location description, e.g. "at 'end'" or "at end"
	Message string
}

// Accumulator collects compile-time diagnostics and tracks whether a
// compile error or a runtime error was ever reported, so the driver can
// choose the correct process exit code (§6.1).
type Accumulator struct {
	diagnostics     []Diagnostic
	hadCompileError bool
	hadRuntimeError bool
}

// NewAccumulator returns a fresh, empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add records a compile-time diagnostic at the given line.
func (a *Accumulator) Add(line int, where, message string) {
	a.diagnostics = append(a.diagnostics, Diagnostic{Line: line, Where: where, Message: message})
	a.hadCompileError = true
}

// AddSimple records a diagnostic with no specific location phrase.
func (a *Accumulator) AddSimple(line int, message string) {
	a.Add(line, "", message)
}

// NoteRuntimeError marks that a runtime error was reported, without
// duplicating it into the diagnostic list (runtime errors are reported
// individually by the caller once evaluation unwinds to the top level).
func (a *Accumulator) NoteRuntimeError() {
	a.hadRuntimeError = true
}

// HadCompileError reports whether any scan/parse/resolve diagnostic was recorded.
func (a *Accumulator) HadCompileError() bool { return a.hadCompileError }

// HadRuntimeError reports whether a runtime error was ever noted.
func (a *Accumulator) HadRuntimeError() bool { return a.hadRuntimeError }

// Diagnostics returns the accumulated diagnostics in report order.
func (a *Accumulator) Diagnostics() []Diagnostic {
	return a.diagnostics
}

// Reset clears all accumulated state. Used between REPL lines.
func (a *Accumulator) Reset() {
	a.diagnostics = nil
	a.hadCompileError = false
	a.hadRuntimeError = false
}

// Report flushes every accumulated diagnostic to w, one per line, in the
// exact "[line N] Error <where>: <message>" format from §6.4.
func (a *Accumulator) Report(w io.Writer) {
	for _, d := range a.diagnostics {
		fmt.Fprintln(w, d.Format())
	}
}

// Format renders a single diagnostic as "[line N] Error <where>: <message>".
func (d Diagnostic) Format() string {
	where := d.Where
	if where != "" {
		where = " " + where
	}
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, where, d.Message)
}

// RuntimeError is a runtime-stratum error (§4.7 item 3). It carries enough
// location information to be reported the same way a compile diagnostic is,
// and is also a regular Go error so it can flow through (Value, error)
// return pairs in the evaluator without any panic/recover machinery.
type RuntimeError struct {
	Line    int
	Where   string
	Message string
}

func (e *RuntimeError) Error() string {
	return Diagnostic{Line: e.Line, Where: e.Where, Message: e.Message}.Format()
}

// NewRuntimeError builds a RuntimeError from a formatted message.
func NewRuntimeError(line int, where, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Line: line, Where: where, Message: fmt.Sprintf(format, args...)}
}

// CompilerError pretty-prints a single diagnostic against its source line
// with a caret, the way go-dws's internal/errors.CompilerError does. No
// caller in this repository uses it: cmd/slang, the REPL and the wasm
// entry point all print the plain "[line N] Error ..." format of
// Diagnostic.Format / Accumulator.Report.
type CompilerError struct {
	Diagnostic
	Source string
	File   string
}

// NewCompilerError builds a CompilerError ready for Format.
func NewCompilerError(d Diagnostic, source, file string) *CompilerError {
	return &CompilerError{Diagnostic: d, Source: source, File: file}
}

// Format renders the error with a source line and a caret pointing at
// column 1 of the offending line (the core pipeline does not currently
// track columns end-to-end past the scanner, so the caret anchors the
// start of the line rather than the exact token).
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d\n", e.File, e.Line)
	} else {
		fmt.Fprintf(&sb, "Error at line %d\n", e.Line)
	}

	if line := e.sourceLine(e.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(line int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatErrors renders a batch of CompilerErrors separated by blank lines,
// mirroring go-dws's errors.FormatErrors helper.
func FormatErrors(errs []*CompilerError, color bool) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Format(color))
	}
	return strings.Join(parts, "\n\n")
}
