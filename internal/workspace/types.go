package workspace

// Type identifies the workspace convention in force at a workspace root.
type Type string

const (
	// TypePnpm is a pnpm workspace (pnpm-workspace.yaml).
	TypePnpm Type = "pnpm"

	// TypeLerna is a lerna monorepo (lerna.json).
	TypeLerna Type = "lerna"

	// TypeNx is an nx monorepo (nx.json plus per-project project.json files).
	TypeNx Type = "nx"

	// TypeTurbo is a turborepo (turbo.json; members come from the root
	// manifest's workspaces field).
	TypeTurbo Type = "turborepo"

	// TypeGoWork is a Go multi-module workspace (go.work use directives).
	TypeGoWork Type = "go-work"

	// TypeNpm is an npm/yarn workspace declared via the workspaces field of
	// the root package.json (no dedicated indicator file).
	TypeNpm Type = "npm"

	// TypeCargo is a cargo workspace declared via the [workspace] table of
	// the root Cargo.toml (no dedicated indicator file).
	TypeCargo Type = "cargo"
)

// Package is one member of a workspace.
type Package struct {
	// Name is the package's declared name from its own manifest, falling
	// back to the directory basename when the manifest is absent or silent.
	Name string

	// Path is the package directory, absolute.
	Path string

	// RelPath is the package directory relative to the workspace root,
	// always slash-separated.
	RelPath string

	// Manifest holds the decoded manifest contents where the convention's
	// manifest was parseable, nil otherwise.
	Manifest map[string]any

	// Ecosystem is the package's own ecosystem type key. Empty until the
	// workspace has been enriched; packages in a polyglot workspace may
	// carry different tags.
	Ecosystem string
}

// Workspace is a detected multi-package project. It is a value snapshot:
// recomputed per detection, never mutated by observers. The workspace itself
// carries no ecosystem; only its packages do.
type Workspace struct {
	// Root is the directory containing the deciding indicator file.
	Root string

	// Type is the convention the indicator file implies.
	Type Type

	// Packages lists member packages sorted by RelPath. Non-nil even when
	// enumeration found nothing.
	Packages []*Package
}

// PackageAt returns the package whose path equals dir, if any.
func (w *Workspace) PackageAt(dir string) (*Package, bool) {
	for _, pkg := range w.Packages {
		if pkg.Path == dir {
			return pkg, true
		}
	}
	return nil, false
}
