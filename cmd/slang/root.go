// ==============================================================================================
// FILE: cmd/slang/root.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: The cobra-based CLI driver (§6.1), grounded on go-dws's
//          cmd/dwscript/cmd package: a root command carrying a persistent
//          --verbose flag, with `run` and `build` subcommands and a bare
//          REPL as the default action when no file is given.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amoghasbhardwaj/slang/repl"
)

// Exit codes, matching the sysexits.h convention the teacher's own error
// reporting alludes to and spec.md §6.1 requires verbatim.
const (
	ExitOK           = 0
	ExitCompileError = 65
	ExitRuntimeError = 70
	ExitIOError      = 74
)

var verbose bool

// NewRootCmd builds the top-level `slang` command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slang",
		Short: "slang is a tree-walking interpreter for the language specified in this repository",
		Long: "slang runs or builds programs written in a small, dynamically-typed,\n" +
			"class-based scripting language in the Lox tradition. With no subcommand\n" +
			"and no file argument it starts an interactive REPL.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.Start(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print extra diagnostic information while running")

	root.AddCommand(newRunCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and translates the outcome into the process exit
// code, matching go-dws's exitWithError helper.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code, ok := err.(exitCoder); ok {
			os.Exit(code.ExitCode())
		}
		os.Exit(ExitIOError)
	}
}

// exitCoder lets an error returned from a subcommand's RunE carry a
// specific process exit code through cobra's generic error return.
type exitCoder interface {
	error
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) ExitCode() int { return e.code }

func newExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}
