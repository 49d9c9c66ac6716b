package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

const (
	// defaultMaxAscend bounds the upward walk from the start directory.
	defaultMaxAscend = 32

	// defaultMaxDepth bounds the downward walk during package enumeration.
	defaultMaxDepth = 8
)

// Detector finds the workspace governing a directory, if any.
type Detector struct {
	// MaxAscend is the maximum number of parent directories examined while
	// looking for a workspace indicator. Hard cap, not a heuristic.
	MaxAscend int

	// MaxDepth is the maximum depth of the package-enumeration walk below
	// the workspace root.
	MaxDepth int
}

// NewDetector returns a detector with the default bounds.
func NewDetector() *Detector {
	return &Detector{
		MaxAscend: defaultMaxAscend,
		MaxDepth:  defaultMaxDepth,
	}
}

// indicatorCheck probes one workspace convention at a candidate root.
// Returning true fixes both the root and the type.
type indicatorCheck struct {
	wsType Type
	probe  func(dir string) bool
}

// indicatorChecks is the fixed convention table, in decision order. The
// dedicated indicator files come first; the two manifest-field conventions
// (npm workspaces, cargo workspace) are checked last because they require
// opening the generic manifest.
func indicatorChecks() []indicatorCheck {
	return []indicatorCheck{
		{TypePnpm, fileProbe("pnpm-workspace.yaml")},
		{TypeLerna, fileProbe("lerna.json")},
		{TypeNx, fileProbe("nx.json")},
		{TypeTurbo, fileProbe("turbo.json")},
		{TypeGoWork, fileProbe("go.work")},
		{TypeNpm, hasNpmWorkspacesField},
		{TypeCargo, hasCargoWorkspaceTable},
	}
}

// fileProbe returns a probe that checks for a regular file named name.
func fileProbe(name string) func(dir string) bool {
	return func(dir string) bool {
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && !info.IsDir()
	}
}

// hasNpmWorkspacesField reports whether dir/package.json declares a
// workspaces field. Unreadable or malformed manifests read as false.
func hasNpmWorkspacesField(dir string) bool {
	manifest, err := readJSONFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return false
	}
	_, ok := manifest["workspaces"]
	return ok
}

// hasCargoWorkspaceTable reports whether dir/Cargo.toml declares a
// [workspace] table.
func hasCargoWorkspaceTable(dir string) bool {
	manifest, err := readTOMLFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return false
	}
	_, ok := manifest["workspace"]
	return ok
}

// Detect walks upward from startDir looking for a workspace indicator. The
// first indicator found fixes the workspace root and type; member packages
// are then enumerated below that root. Returns nil when startDir belongs to
// no workspace. Detect never returns an error: filesystem problems read as
// negative signals.
func (d *Detector) Detect(startDir string) *Workspace {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil
	}
	dir = filepath.Clean(dir)

	maxAscend := d.MaxAscend
	if maxAscend <= 0 {
		maxAscend = defaultMaxAscend
	}

	for i := 0; i < maxAscend; i++ {
		for _, check := range indicatorChecks() {
			if check.probe(dir) {
				return &Workspace{
					Root:     dir,
					Type:     check.wsType,
					Packages: d.enumerate(dir, check.wsType),
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

// enumerate lists member packages for a detected root using the convention's
// strategy. Always returns a non-nil slice sorted by RelPath.
func (d *Detector) enumerate(root string, wsType Type) []*Package {
	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	var pkgs []*Package
	switch wsType {
	case TypePnpm:
		pkgs = d.globPackages(root, pnpmPatterns(root), "package.json", maxDepth)
	case TypeLerna:
		pkgs = d.globPackages(root, lernaPatterns(root), "package.json", maxDepth)
	case TypeNpm, TypeTurbo:
		pkgs = d.globPackages(root, npmPatterns(root), "package.json", maxDepth)
	case TypeNx:
		pkgs = d.nxPackages(root, maxDepth)
	case TypeGoWork:
		pkgs = d.goWorkPackages(root)
	case TypeCargo:
		pkgs = d.cargoPackages(root, maxDepth)
	}

	if pkgs == nil {
		pkgs = []*Package{}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].RelPath < pkgs[j].RelPath })
	return pkgs
}

// readJSONFile decodes a JSON file into a generic map.
func readJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}

// readTOMLFile decodes a TOML file into a generic map.
func readTOMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return out, nil
}
