package ecosystem

import (
	"fmt"
	"strings"
)

// Unknown is the sentinel type returned when no descriptor matches a
// directory. It is a valid answer, not an error.
const Unknown = "unknown"

// ToolCommands holds the shell command templates an ecosystem uses for the
// common lifecycle operations. Templates may contain the {pm} placeholder,
// which expands to the resolved package manager name.
type ToolCommands struct {
	Install string `yaml:"install"`
	Test    string `yaml:"test"`
	Build   string `yaml:"build"`
	Run     string `yaml:"run"`
	Version string `yaml:"version"`
}

// Render expands the {pm} placeholder in a command template.
func (t ToolCommands) Render(template, packageManager string) string {
	return strings.ReplaceAll(template, "{pm}", packageManager)
}

// Descriptor is the declarative capability object for one language/toolchain.
// Descriptors are value objects: constructed once at registry load and never
// mutated afterward.
type Descriptor struct {
	// Type is the unique key this descriptor registers under, e.g. "python".
	Type string `yaml:"type"`

	// Name is the human-readable ecosystem name, e.g. "Python".
	Name string `yaml:"name"`

	// Priority orders detection: lower numbers are checked earlier.
	// Ties between distinct types resolve by registration order.
	Priority int `yaml:"priority"`

	// Indicators are filenames whose presence directly in a directory
	// asserts this ecosystem. At least one is required.
	Indicators []string `yaml:"indicators"`

	// Extensions are source file extensions associated with the ecosystem,
	// e.g. [".py", ".pyi"]. Informational; not used for detection.
	Extensions []string `yaml:"extensions"`

	// Tools are the lifecycle command templates for this ecosystem.
	Tools ToolCommands `yaml:"tools"`

	// PackageManagers lists candidate package managers in priority order,
	// consulted when nothing else decides the tool.
	PackageManagers []string `yaml:"packageManagers"`

	// DefaultPackageManager is the last-resort answer when no package
	// manager signal is present at all.
	DefaultPackageManager string `yaml:"defaultPackageManager"`
}

// Validate checks that a descriptor is usable. Descriptors loaded from files
// that fail validation are skipped during discovery.
func (d *Descriptor) Validate() error {
	if d.Type == "" {
		return fmt.Errorf("descriptor has no type key")
	}
	if d.Type == Unknown {
		return fmt.Errorf("type key %q is reserved", Unknown)
	}
	if len(d.Indicators) == 0 {
		return fmt.Errorf("descriptor %q declares no indicator files", d.Type)
	}
	return nil
}

// InstallCommand returns the install command for the given package manager.
func (d *Descriptor) InstallCommand(packageManager string) string {
	return d.Tools.Render(d.Tools.Install, packageManager)
}

// TestCommand returns the test command for the given package manager.
func (d *Descriptor) TestCommand(packageManager string) string {
	return d.Tools.Render(d.Tools.Test, packageManager)
}

// BuildCommand returns the build command for the given package manager.
func (d *Descriptor) BuildCommand(packageManager string) string {
	return d.Tools.Render(d.Tools.Build, packageManager)
}

// RunCommand returns the run command for the given package manager.
func (d *Descriptor) RunCommand(packageManager string) string {
	return d.Tools.Render(d.Tools.Run, packageManager)
}
