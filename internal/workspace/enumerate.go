package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// manifestLoadParallelism caps concurrent manifest reads during enumeration.
const manifestLoadParallelism = 8

// excludedDirNames are subtrees never descended into during enumeration:
// dependency and build-output directories are both large and never members.
var excludedDirNames = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
}

// pnpmPatterns reads the packages list from pnpm-workspace.yaml. Negated
// entries are dropped; this core only needs the positive membership set.
func pnpmPatterns(root string) []string {
	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		return nil
	}
	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var patterns []string
	for _, p := range doc.Packages {
		if !strings.HasPrefix(p, "!") {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// lernaPatterns reads the packages list from lerna.json, defaulting to
// lerna's conventional packages/* when the field is absent.
func lernaPatterns(root string) []string {
	manifest, err := readJSONFile(filepath.Join(root, "lerna.json"))
	if err != nil {
		return []string{"packages/*"}
	}
	if patterns := stringList(manifest["packages"]); len(patterns) > 0 {
		return patterns
	}
	return []string{"packages/*"}
}

// npmPatterns reads the workspaces field from the root package.json. The
// field is either a bare pattern list or an object with a packages list.
// Turborepo piggybacks on the same field.
func npmPatterns(root string) []string {
	manifest, err := readJSONFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	switch ws := manifest["workspaces"].(type) {
	case []any:
		return stringList(ws)
	case map[string]any:
		return stringList(ws["packages"])
	default:
		return nil
	}
}

// stringList coerces a decoded JSON/TOML array into a string slice,
// dropping non-string elements.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// globPackages collects directories below root that match one of the glob
// patterns and contain the convention's manifest file. Manifest contents are
// loaded in parallel; a package whose manifest fails to parse is kept with a
// nil Manifest and its basename as the name.
func (d *Detector) globPackages(root string, patterns []string, manifestName string, maxDepth int) []*Package {
	if len(patterns) == 0 {
		return nil
	}

	var pkgs []*Package
	walkDirs(root, maxDepth, func(dir, rel string) {
		if !matchesAny(patterns, rel) {
			return
		}
		if !fileProbe(manifestName)(dir) {
			return
		}
		pkgs = append(pkgs, &Package{Path: dir, RelPath: rel})
	})

	loadManifests(pkgs, manifestName)
	return pkgs
}

// matchesAny reports whether the slash-separated relative path matches any
// of the glob patterns. Invalid patterns never match.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err == nil && ok {
			return true
		}
	}
	return false
}

// loadManifests fills Name and Manifest for each package concurrently.
func loadManifests(pkgs []*Package, manifestName string) {
	var g errgroup.Group
	g.SetLimit(manifestLoadParallelism)

	for _, pkg := range pkgs {
		pkg := pkg
		g.Go(func() error {
			pkg.Name = filepath.Base(pkg.Path)
			switch manifestName {
			case "package.json", "project.json":
				if manifest, err := readJSONFile(filepath.Join(pkg.Path, manifestName)); err == nil {
					pkg.Manifest = manifest
					if name, ok := manifest["name"].(string); ok && name != "" {
						pkg.Name = name
					}
				}
			case "Cargo.toml":
				if manifest, err := readTOMLFile(filepath.Join(pkg.Path, manifestName)); err == nil {
					pkg.Manifest = manifest
					if tbl, ok := manifest["package"].(map[string]any); ok {
						if name, ok := tbl["name"].(string); ok && name != "" {
							pkg.Name = name
						}
					}
				}
			case "go.mod":
				if data, err := os.ReadFile(filepath.Join(pkg.Path, manifestName)); err == nil {
					if module := modfile.ModulePath(data); module != "" {
						pkg.Name = filepath.Base(module)
						pkg.Manifest = map[string]any{"module": module}
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait() // loaders never return errors; absent manifests are negative signals
}

// nxPackages enumerates an nx workspace. Nx is a build orchestrator: member
// projects declare themselves with a project.json descriptor, so every
// directory carrying one is a member, in addition to directories matched by
// the workspace layout patterns that carry a package.json. Both sources are
// de-duplicated by resolved path.
func (d *Detector) nxPackages(root string, maxDepth int) []*Package {
	patterns := nxLayoutPatterns(root)

	seen := make(map[string]bool)
	var pkgs []*Package

	walkDirs(root, maxDepth, func(dir, rel string) {
		switch {
		case fileProbe("project.json")(dir):
			// Explicit declaration wins regardless of patterns.
		case matchesAny(patterns, rel) && fileProbe("package.json")(dir):
		default:
			return
		}
		if seen[dir] {
			return
		}
		seen[dir] = true
		pkgs = append(pkgs, &Package{Path: dir, RelPath: rel})
	})

	// Prefer the explicit descriptor for naming; fall back to package.json.
	for _, pkg := range pkgs {
		pkg.Name = filepath.Base(pkg.Path)
		for _, manifestName := range []string{"project.json", "package.json"} {
			manifest, err := readJSONFile(filepath.Join(pkg.Path, manifestName))
			if err != nil {
				continue
			}
			pkg.Manifest = manifest
			if name, ok := manifest["name"].(string); ok && name != "" {
				pkg.Name = name
			}
			break
		}
	}
	return pkgs
}

// nxLayoutPatterns derives glob patterns from nx.json's workspaceLayout,
// defaulting to nx's conventional apps/libs split.
func nxLayoutPatterns(root string) []string {
	appsDir, libsDir := "apps", "libs"
	if manifest, err := readJSONFile(filepath.Join(root, "nx.json")); err == nil {
		if layout, ok := manifest["workspaceLayout"].(map[string]any); ok {
			if s, ok := layout["appsDir"].(string); ok && s != "" {
				appsDir = s
			}
			if s, ok := layout["libsDir"].(string); ok && s != "" {
				libsDir = s
			}
		}
	}
	return []string{appsDir + "/*", libsDir + "/*"}
}

// goWorkPackages enumerates a Go workspace from the go.work use directives.
// Directives are explicit declarations; only those whose directory actually
// contains a go.mod become members.
func (d *Detector) goWorkPackages(root string) []*Package {
	data, err := os.ReadFile(filepath.Join(root, "go.work"))
	if err != nil {
		return nil
	}
	work, err := modfile.ParseWork("go.work", data, nil)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var pkgs []*Package
	for _, use := range work.Use {
		dir := use.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		dir = filepath.Clean(dir)
		if seen[dir] || !fileProbe("go.mod")(dir) {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue // members outside the root are not ours to own
		}
		seen[dir] = true
		pkgs = append(pkgs, &Package{Path: dir, RelPath: filepath.ToSlash(rel)})
	}

	loadManifests(pkgs, "go.mod")
	return pkgs
}

// cargoPackages enumerates a cargo workspace from the [workspace] members
// globs of the root Cargo.toml, honoring the exclude list.
func (d *Detector) cargoPackages(root string, maxDepth int) []*Package {
	manifest, err := readTOMLFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil
	}
	ws, ok := manifest["workspace"].(map[string]any)
	if !ok {
		return nil
	}
	members := stringList(ws["members"])
	excludes := stringList(ws["exclude"])
	if len(members) == 0 {
		return nil
	}

	var pkgs []*Package
	walkDirs(root, maxDepth, func(dir, rel string) {
		if !matchesAny(members, rel) || matchesAny(excludes, rel) {
			return
		}
		if !fileProbe("Cargo.toml")(dir) {
			return
		}
		pkgs = append(pkgs, &Package{Path: dir, RelPath: rel})
	})

	loadManifests(pkgs, "Cargo.toml")
	return pkgs
}

// walkDirs visits every directory under root up to maxDepth levels deep,
// calling fn with the absolute path and the slash-separated path relative to
// root. Hidden and excluded directories are skipped; an unreadable directory
// prunes its own subtree without aborting the walk. The root itself is not
// visited.
func walkDirs(root string, maxDepth int, fn func(dir, rel string)) {
	var walk func(dir, rel string, depth int)
	walk = func(dir, rel string, depth int) {
		if depth > maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return // prune this subtree, keep walking the rest
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || excludedDirNames[name] {
				continue
			}
			childDir := filepath.Join(dir, name)
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}
			fn(childDir, childRel)
			walk(childDir, childRel, depth+1)
		}
	}
	walk(root, "", 1)
}
