package pkgmgr

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/projectscope/scope/internal/ecosystem"
)

// EnvOverride is the environment variable that forces a package manager,
// short-circuiting every other signal.
const EnvOverride = "SCOPE_PACKAGE_MANAGER"

// fallbackManager answers when even the ecosystem is unknown. The tool grew
// up around JS tooling, where npm is the lowest-surprise default.
const fallbackManager = "npm"

// lockfileTable maps lock files to the manager that writes them, in check
// order. More specific managers come before npm's package-lock.json because
// migrated repos often leave the old lock file behind.
var lockfileTable = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"bun.lockb", "bun"},
	{"package-lock.json", "npm"},
	{"uv.lock", "uv"},
	{"poetry.lock", "poetry"},
	{"Pipfile.lock", "pipenv"},
	{"Cargo.lock", "cargo"},
	{"Gemfile.lock", "bundler"},
	{"composer.lock", "composer"},
	{"go.sum", "go"},
}

// Resolver picks the package manager for a directory.
type Resolver struct {
	registry *ecosystem.Registry

	// getenv, lookPath and homeDir are seams for tests; they default to
	// the real os/exec implementations.
	getenv   func(string) string
	lookPath func(string) (string, error)
	homeDir  func() (string, error)
}

// NewResolver creates a resolver backed by the given ecosystem registry.
func NewResolver(registry *ecosystem.Registry) *Resolver {
	return &Resolver{
		registry: registry,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		homeDir:  os.UserHomeDir,
	}
}

// Resolve picks exactly one package manager for dir, walking the chain in
// fixed order and stopping at the first signal. It always answers; the
// Source field records which step decided.
func (r *Resolver) Resolve(dir string) Choice {
	descriptor := r.descriptorFor(dir)

	// 1. Environment override.
	if name := strings.TrimSpace(r.getenv(EnvOverride)); name != "" {
		return r.choice(name, SourceEnv, descriptor)
	}

	// 2. Project-local persisted preference.
	if name, ok := loadPreference(dir); ok {
		return r.choice(name, SourceProjectConfig, descriptor)
	}

	// 3. Manifest field naming the tool.
	if name, ok := manifestManager(dir); ok {
		return r.choice(name, SourceManifestField, descriptor)
	}

	// 4. Tool-specific lock file.
	for _, entry := range lockfileTable {
		if info, err := os.Stat(filepath.Join(dir, entry.file)); err == nil && !info.IsDir() {
			return r.choice(entry.manager, SourceLockfile, descriptor)
		}
	}

	// 5. User-global persisted preference.
	if home, err := r.homeDir(); err == nil && home != "" {
		if name, ok := loadPreference(home); ok {
			return r.choice(name, SourceGlobalConfig, descriptor)
		}
	}

	// 6. First ecosystem candidate present on the host.
	if descriptor != nil {
		for _, candidate := range descriptor.PackageManagers {
			if _, err := r.lookPath(candidate); err == nil {
				return r.choice(candidate, SourceHostTool, descriptor)
			}
		}
	}

	// 7. Fixed ecosystem-appropriate default.
	name := fallbackManager
	if descriptor != nil && descriptor.DefaultPackageManager != "" {
		name = descriptor.DefaultPackageManager
	}
	return r.choice(name, SourceDefault, descriptor)
}

// descriptorFor returns the descriptor for dir's detected ecosystem, nil
// when unknown.
func (r *Resolver) descriptorFor(dir string) *ecosystem.Descriptor {
	if r.registry == nil {
		return nil
	}
	typeKey := r.registry.Detect(dir)
	if typeKey == ecosystem.Unknown {
		return nil
	}
	d, ok := r.registry.Get(typeKey)
	if !ok {
		return nil
	}
	return d
}

// choice assembles a Choice, rendering the ecosystem's command templates for
// the resolved manager.
func (r *Resolver) choice(name string, source Source, d *ecosystem.Descriptor) Choice {
	c := Choice{Name: name, Source: source}
	if d != nil {
		c.Commands = Commands{
			Install: d.InstallCommand(name),
			Test:    d.TestCommand(name),
			Build:   d.BuildCommand(name),
			Run:     d.RunCommand(name),
		}
	}
	return c
}

// manifestManager reads the packageManager field of dir/package.json, the
// one manifest field this core inspects. The corepack "name@version" form is
// accepted; only the name matters here.
func manifestManager(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return "", false
	}
	var manifest struct {
		PackageManager string `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", false
	}
	name := manifest.PackageManager
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}
