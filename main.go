// ==============================================================================================
// FILE: main.go
// ==============================================================================================
// PURPOSE: Process entry point. All argument parsing, subcommands, and exit
//          code handling live in cmd/slang; main just hands off to it.
// ==============================================================================================

package main

import "github.com/amoghasbhardwaj/slang/cmd/slang"

func main() {
	cmd.Execute()
}
