package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/projectscope/scope/internal/pkgmgr"
)

var pmCmd = &cobra.Command{
	Use:   "pm [dir]",
	Short: "Resolve the package manager for a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, dir, err := newContext(args)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()

		choice := ctx.PackageManager(dir)
		fmt.Printf("%s %s (decided by %s)\n", green("✓"), choice.Name, choice.Source)
		if choice.Commands.Install != "" {
			fmt.Printf("  install: %s\n", choice.Commands.Install)
			fmt.Printf("  test:    %s\n", choice.Commands.Test)
			fmt.Printf("  build:   %s\n", choice.Commands.Build)
			fmt.Printf("  run:     %s\n", choice.Commands.Run)
		}
		return nil
	},
}

var pmSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Persist a package-manager preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")

		scopeDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determining working directory: %w", err)
		}
		if global {
			scopeDir, err = os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("determining home directory: %w", err)
			}
		}

		if err := pkgmgr.SavePreference(scopeDir, args[0]); err != nil {
			return fmt.Errorf("saving preference: %w", err)
		}
		fmt.Printf("%s preference saved: %s\n",
			color.New(color.FgGreen).Sprint("✓"), args[0])
		return nil
	},
}

func init() {
	pmSetCmd.Flags().Bool("global", false, "Persist the preference at the user level")
	pmCmd.AddCommand(pmSetCmd)
	rootCmd.AddCommand(pmCmd)
}
