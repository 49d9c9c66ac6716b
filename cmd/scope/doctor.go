package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/projectscope/scope/internal/ecosystem"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [dir]",
	Short: "Check the scope installation and descriptor layers",
	Long: `Run checks to diagnose common configuration issues.

This command checks:
- The built-in descriptor set loads and is ordered
- User- and project-level descriptor directories, if present
- Workspace detection at the given directory
- Writability of the project .scope directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, dir, err := newContext(args)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("%s Descriptor registry\n", cyan("→"))
		descriptors := ctx.Registry().List()
		fmt.Printf("  %s %d ecosystems registered\n", green("✓"), len(descriptors))
		for _, d := range descriptors {
			fmt.Printf("    %-12s priority %d, %d indicators\n",
				d.Type, d.Priority, len(d.Indicators))
		}

		fmt.Printf("%s Descriptor layers\n", cyan("→"))
		for _, layer := range []struct {
			label string
			path  string
		}{
			{"user", ecosystem.DefaultUserDir()},
			{"project", filepath.Join(dir, ".scope", "ecosystems")},
		} {
			if layer.path == "" {
				fmt.Printf("  %s %s layer unavailable\n", yellow("⚠"), layer.label)
				continue
			}
			if _, err := os.Stat(layer.path); err != nil {
				fmt.Printf("  %s %s layer absent (%s)\n", yellow("·"), layer.label, layer.path)
				continue
			}
			fmt.Printf("  %s %s layer present (%s)\n", green("✓"), layer.label, layer.path)
		}

		fmt.Printf("%s Workspace detection\n", cyan("→"))
		if ws := ctx.Workspace(); ws != nil {
			fmt.Printf("  %s %s workspace, %d packages (root %s)\n",
				green("✓"), ws.Type, len(ws.Packages), ws.Root)
		} else {
			fmt.Printf("  %s no workspace; operating on single directories\n", yellow("·"))
		}

		fmt.Printf("%s Preference writability\n", cyan("→"))
		probe := filepath.Join(dir, ".scope", ".doctor-probe")
		if err := os.MkdirAll(filepath.Dir(probe), 0755); err != nil {
			fmt.Printf("  %s cannot create %s: %v\n", yellow("⚠"), filepath.Dir(probe), err)
			return nil
		}
		if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
			fmt.Printf("  %s cannot write preferences here: %v\n", yellow("⚠"), err)
			return nil
		}
		os.Remove(probe)
		fmt.Printf("  %s %s is writable\n", green("✓"), filepath.Dir(probe))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
