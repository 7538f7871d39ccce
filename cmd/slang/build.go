// ==============================================================================================
// FILE: cmd/slang/build.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `slang build <file>` -- emits the informative textual LLVM IR
//          module for a source file (§6.5) to `./output.ll` by default, or
//          to the path named by -o/--output.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amoghasbhardwaj/slang/errors"
	"github.com/amoghasbhardwaj/slang/irgen"
	"github.com/amoghasbhardwaj/slang/lexer"
	"github.com/amoghasbhardwaj/slang/parser"
)

func newBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "emit an informative LLVM IR module for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildFile(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output.ll", "path to write the generated .ll module to")

	return cmd
}

func buildFile(cmd *cobra.Command, path, output string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return newExitError(ExitIOError, fmt.Errorf("reading %s: %w", path, err))
	}

	accum := errors.NewAccumulator()
	tokens := lexer.New(string(source), accum).ScanTokens()
	statements := parser.New(tokens, accum).Parse()

	if accum.HadCompileError() {
		accum.Report(cmd.ErrOrStderr())
		return newExitError(ExitCompileError, fmt.Errorf("compilation failed"))
	}

	module := irgen.NewModule("lox")
	module.Generate(statements)

	if err := os.WriteFile(output, []byte(module.String()), 0o644); err != nil {
		return newExitError(ExitIOError, fmt.Errorf("writing %s: %w", output, err))
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	}
	return nil
}
