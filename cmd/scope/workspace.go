package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace [dir]",
	Short: "Show the workspace governing a directory, if any",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := newContext(args)
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		ws := ctx.Workspace()
		if ws == nil {
			fmt.Printf("%s not part of a workspace\n", yellow("·"))
			return nil
		}

		fmt.Printf("%s %s workspace at %s\n", green("✓"), ws.Type, ws.Root)
		if len(ws.Packages) == 0 {
			fmt.Printf("  (no member packages)\n")
			return nil
		}
		for _, pkg := range ws.Packages {
			eco := pkg.Ecosystem
			if eco == "" {
				eco = "unknown"
			}
			fmt.Printf("  %s %-30s %-20s %s\n", cyan("→"), pkg.Name, pkg.RelPath, eco)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
}
