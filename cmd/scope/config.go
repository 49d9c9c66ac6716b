package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [dir]",
	Short: "Show the effective merged configuration at a location",
	Long: `Print the configuration in force at a directory, deep-merged from
the user-global, workspace-root, and owning-package scopes. Later
scopes override earlier ones: objects merge key by key, arrays and
primitives replace wholesale.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		ctx, dir, err := newContext(args)
		if err != nil {
			return err
		}

		merged := ctx.ConfigNamed(name, dir)
		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering configuration: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().String("name", "config.json", "Configuration file name to resolve")
	rootCmd.AddCommand(configCmd)
}
