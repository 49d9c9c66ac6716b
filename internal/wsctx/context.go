package wsctx

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/projectscope/scope/internal/config"
	"github.com/projectscope/scope/internal/ecosystem"
	"github.com/projectscope/scope/internal/pkgmgr"
	"github.com/projectscope/scope/internal/workspace"
)

// Snapshot is one immutable view of the detected workspace. A nil Workspace
// means the start directory belongs to no workspace; queries then operate on
// single directories.
type Snapshot struct {
	// ID identifies this snapshot in diagnostics.
	ID string

	// Workspace is the detected, enriched workspace, or nil.
	Workspace *workspace.Workspace

	// TakenAt is when detection ran.
	TakenAt time.Time
}

// Context composes the registry, detectors and resolvers behind one
// cache-friendly API. Construct once and share; all methods are safe for
// concurrent use.
type Context struct {
	startDir string

	registry *ecosystem.Registry
	detector *workspace.Detector
	configs  *config.Resolver
	managers *pkgmgr.Resolver

	mu    sync.RWMutex
	snap  *Snapshot
	group singleflight.Group
}

// New builds a context rooted at startDir with default components: the
// registry discovers the built-in, user (~/.scope/ecosystems) and project
// (<startDir>/.scope/ecosystems) descriptor layers.
func New(startDir string) *Context {
	registry := ecosystem.NewRegistry(ecosystem.Options{
		UserDir:    ecosystem.DefaultUserDir(),
		ProjectDir: filepath.Join(startDir, ".scope", "ecosystems"),
	})
	registry.Discover()

	return NewWithComponents(startDir, registry,
		workspace.NewDetector(), config.NewResolver(), pkgmgr.NewResolver(registry))
}

// NewWithComponents builds a context from explicit components. The registry
// must already be discovered.
func NewWithComponents(startDir string, registry *ecosystem.Registry,
	detector *workspace.Detector, configs *config.Resolver, managers *pkgmgr.Resolver) *Context {
	return &Context{
		startDir: startDir,
		registry: registry,
		detector: detector,
		configs:  configs,
		managers: managers,
	}
}

// Registry exposes the ecosystem registry for callers with descriptor-level
// questions.
func (c *Context) Registry() *ecosystem.Registry {
	return c.registry
}

// Snapshot returns the current workspace snapshot, detecting lazily on first
// use. Concurrent first calls share one detection pass.
func (c *Context) Snapshot() *Snapshot {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap
	}

	v, _, _ := c.group.Do("snapshot", func() (any, error) {
		built := c.buildSnapshot()
		c.mu.Lock()
		if c.snap == nil {
			c.snap = built
		}
		snap := c.snap
		c.mu.Unlock()
		return snap, nil
	})
	return v.(*Snapshot)
}

// Refresh discards the cached snapshot and detects again. The new snapshot
// is fully built before it becomes visible to readers.
func (c *Context) Refresh() *Snapshot {
	built := c.buildSnapshot()

	c.mu.Lock()
	c.snap = built
	c.mu.Unlock()

	c.configs.ClearCache()
	return built
}

// buildSnapshot runs detection and enrichment, producing a complete value
// before anyone can observe it.
func (c *Context) buildSnapshot() *Snapshot {
	ws := c.detector.Detect(c.startDir)
	workspace.Enrich(ws, c.registry)
	return &Snapshot{
		ID:        uuid.NewString(),
		Workspace: ws,
		TakenAt:   time.Now(),
	}
}

// Workspace returns the detected workspace, or nil when the start directory
// is a plain single-package tree.
func (c *Context) Workspace() *workspace.Workspace {
	return c.Snapshot().Workspace
}

// FindPackageForFile returns the workspace package owning the given file,
// chosen by longest path-prefix match so nested packages win over their
// parents. Returns nil when no package owns it.
func (c *Context) FindPackageForFile(path string) *workspace.Package {
	return c.ownerOf(path)
}

// FindPackageForDir returns the workspace package owning the given
// directory, by the same longest-prefix rule.
func (c *Context) FindPackageForDir(dir string) *workspace.Package {
	return c.ownerOf(dir)
}

// ownerOf picks the package whose path is the longest prefix of path.
func (c *Context) ownerOf(path string) *workspace.Package {
	ws := c.Snapshot().Workspace
	if ws == nil {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	abs = filepath.Clean(abs)

	var owner *workspace.Package
	for _, pkg := range ws.Packages {
		if !underPath(abs, pkg.Path) {
			continue
		}
		if owner == nil || len(pkg.Path) > len(owner.Path) {
			owner = pkg
		}
	}
	return owner
}

// underPath reports whether path equals base or lies beneath it.
func underPath(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base+string(os.PathSeparator))
}

// Ecosystem returns the single best ecosystem type for a directory.
func (c *Context) Ecosystem(dir string) string {
	return c.registry.Detect(dir)
}

// Ecosystems returns every matching ecosystem type for a directory.
func (c *Context) Ecosystems(dir string) []string {
	return c.registry.DetectAll(dir)
}

// Config returns the effective merged configuration at dir, using the
// default config name.
func (c *Context) Config(dir string) map[string]any {
	return c.ConfigNamed(config.DefaultConfigName, dir)
}

// ConfigNamed returns the effective merged configuration for one config file
// name at dir. The workspace-root scope is the detected root when dir lies
// inside the workspace, dir itself otherwise; the package scope is supplied
// automatically when a workspace package owns dir.
func (c *Context) ConfigNamed(name, dir string) map[string]any {
	workspaceRoot := dir
	packagePath := ""

	if ws := c.Snapshot().Workspace; ws != nil {
		if abs, err := filepath.Abs(dir); err == nil && underPath(filepath.Clean(abs), ws.Root) {
			workspaceRoot = ws.Root
			if pkg := c.ownerOf(dir); pkg != nil {
				packagePath = pkg.Path
			}
		}
	}
	return c.configs.Load(name, workspaceRoot, packagePath)
}

// PackageManager resolves the concrete package manager for dir.
func (c *Context) PackageManager(dir string) pkgmgr.Choice {
	return c.managers.Resolve(dir)
}
