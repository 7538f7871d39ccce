package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the interpreter version. It is a constant, not stamped at
// build time, since this project has no release pipeline of its own.
const Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the interpreter version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
			return nil
		},
	}
}
