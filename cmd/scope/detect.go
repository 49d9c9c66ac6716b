package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/projectscope/scope/internal/ecosystem"
)

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Detect the ecosystem(s) of a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		ctx, dir, err := newContext(args)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		if all {
			for _, typeKey := range ctx.Ecosystems(dir) {
				printEcosystem(ctx.Registry(), typeKey, green, yellow)
			}
			return nil
		}
		printEcosystem(ctx.Registry(), ctx.Ecosystem(dir), green, yellow)
		return nil
	},
}

func printEcosystem(registry *ecosystem.Registry, typeKey string,
	green, yellow func(...any) string) {
	if typeKey == ecosystem.Unknown {
		fmt.Printf("%s\n", yellow(ecosystem.Unknown))
		return
	}
	if d, ok := registry.Get(typeKey); ok {
		fmt.Printf("%s (%s)\n", green(typeKey), d.Name)
		return
	}
	fmt.Printf("%s\n", green(typeKey))
}

func init() {
	detectCmd.Flags().Bool("all", false, "List every matching ecosystem, not just the best")
	rootCmd.AddCommand(detectCmd)
}
