package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ConfigDirName is the hidden subdirectory holding configuration at every
// scope: the user's home directory, the workspace root, and each package.
const ConfigDirName = ".scope"

// DefaultConfigName is the configuration file resolved when callers don't
// name one explicitly.
const DefaultConfigName = "config.json"

// layerCacheSize bounds the resolver's layer cache. Entries are small
// decoded trees; the bound exists to keep long-lived processes from
// accumulating layers for every directory they ever touched.
const layerCacheSize = 256

// Resolver loads and merges configuration layers. Layers are cached by
// (config name, scope path); the cache is invalidated only by ClearCache,
// never automatically — callers needing freshness must clear explicitly.
type Resolver struct {
	cache *lru.Cache[string, map[string]any]

	// homeDir returns the user-global scope directory. Overridable for
	// tests; defaults to os.UserHomeDir.
	homeDir func() (string, error)
}

// NewResolver creates a resolver with an empty layer cache.
func NewResolver() *Resolver {
	cache, err := lru.New[string, map[string]any](layerCacheSize)
	if err != nil {
		panic(fmt.Sprintf("config: building layer cache: %v", err)) // only on size <= 0
	}
	return &Resolver{
		cache:   cache,
		homeDir: os.UserHomeDir,
	}
}

// Load returns the merged configuration tree for a location. Layers apply in
// fixed precedence, later overriding earlier:
//
//  1. global: $HOME/.scope/<name>
//  2. workspace: <workspaceRoot>/.scope/<name>
//  3. package: <packagePath>/.scope/<name>, only when packagePath is non-empty
//
// workspaceRoot should be the detected workspace root, or the queried
// directory itself when no workspace applies. A missing or unparsable file
// at any scope contributes an empty layer; Load never fails.
func (r *Resolver) Load(name, workspaceRoot, packagePath string) map[string]any {
	if name == "" {
		name = DefaultConfigName
	}

	layers := make([]map[string]any, 0, 3)
	if home, err := r.homeDir(); err == nil && home != "" {
		layers = append(layers, r.layer(name, home))
	}
	if workspaceRoot != "" {
		layers = append(layers, r.layer(name, workspaceRoot))
	}
	if packagePath != "" && packagePath != workspaceRoot {
		layers = append(layers, r.layer(name, packagePath))
	}
	return Merge(layers...)
}

// ClearCache drops every cached layer. The next Load re-reads from disk.
func (r *Resolver) ClearCache() {
	r.cache.Purge()
}

// layer returns the raw configuration tree for one scope, consulting the
// cache first. The empty layer (missing or malformed file) is cached too:
// absence is as stable an answer as presence until the caller clears.
func (r *Resolver) layer(name, scopeDir string) map[string]any {
	key := name + "\x00" + scopeDir
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	loaded := readLayer(filepath.Join(scopeDir, ConfigDirName, name))
	r.cache.Add(key, loaded)
	return loaded
}

// readLayer reads and decodes one configuration file. Any failure — absent
// file, permission error, invalid JSON — yields the empty layer.
func readLayer(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		debugf("config: ignoring malformed %s: %v", path, err)
		return map[string]any{}
	}
	if tree == nil {
		return map[string]any{}
	}
	return tree
}

// debugf prints a diagnostic line to stderr when SCOPE_DEBUG is set.
func debugf(format string, args ...any) {
	if os.Getenv("SCOPE_DEBUG") == "" {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
