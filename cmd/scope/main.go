package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/projectscope/scope/internal/wsctx"
)

// version is stamped by the release build.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scope",
	Short: "Answer what kind of project lives in a directory tree",
	Long: `Scope inspects a directory tree and answers three questions:
which ecosystem(s) the code belongs to, whether it is part of a
multi-package workspace, and which configuration and tool commands
apply at that exact location.

Every query is a fresh, synchronous scan; nothing is watched or
executed. Scope degrades to "unknown" on anything it cannot read.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newContext builds the workspace context for the directory a command
// operates on: the positional argument if given, else the working directory.
func newContext(args []string) (*wsctx.Context, string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return wsctx.New(abs), abs, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
