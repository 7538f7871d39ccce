// ==============================================================================================
// FILE: cmd/slang/run.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `slang run <file>` -- scans, parses, resolves, and evaluates a
//          source file, following the pipeline order in §2. Modeled on
//          go-dws's `run` command: a `--dump-ast` flag for inspecting the
//          parsed program and a `--trace` flag for a verbose resolver dump,
//          both gated behind the persistent --verbose flag being at least
//          implicitly on (either flag alone is enough to show its output).
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/interp"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
	"github.com/amoghasbhardwaj/slang/resolver"
)

func newRunCmd() *cobra.Command {
	var dumpAST bool
	var trace bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "run a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args[0], dumpAST, trace)
		},
	}

	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed program's statements before executing")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the resolver's function/class label table before executing")

	return cmd
}

func runFile(cmd *cobra.Command, path string, dumpAST, trace bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return newExitError(ExitIOError, fmt.Errorf("reading %s: %w", path, err))
	}

	accum := errors.NewAccumulator()
	tokens := lexer.New(string(source), accum).ScanTokens()
	statements := parser.New(tokens, accum).Parse()

	if dumpAST || verbose {
		for _, s := range statements {
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
		}
	}

	if accum.HadCompileError() {
		accum.Report(cmd.ErrOrStderr())
		return newExitError(ExitCompileError, fmt.Errorf("compilation failed"))
	}

	r := resolver.New(accum)
	locals := r.Resolve(statements)

	if trace || verbose {
		fmt.Fprint(cmd.OutOrStdout(), r.DumpLabels())
	}

	if accum.HadCompileError() {
		accum.Report(cmd.ErrOrStderr())
		return newExitError(ExitCompileError, fmt.Errorf("resolution failed"))
	}

	in := interp.New(locals, cmd.OutOrStdout(), cmd.InOrStdin(), accum)
	if err := in.Interpret(statements); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newExitError(ExitRuntimeError, fmt.Errorf("runtime error"))
	}

	return nil
}
