package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScopeConfig writes a config file under dir/.scope/<name>.
func writeScopeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	scopeDir := filepath.Join(dir, ConfigDirName)
	require.NoError(t, os.MkdirAll(scopeDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(scopeDir, name), []byte(content), 0644))
}

// newTestResolver returns a resolver whose global scope is the given dir.
func newTestResolver(home string) *Resolver {
	r := NewResolver()
	r.homeDir = func() (string, error) { return home, nil }
	return r
}

func TestLoadThreeLayers(t *testing.T) {
	home := t.TempDir()
	wsRoot := t.TempDir()
	pkg := filepath.Join(wsRoot, "packages", "api")
	require.NoError(t, os.MkdirAll(pkg, 0755))

	writeScopeConfig(t, home, "config.json", `{"testCoverage": 80}`)
	writeScopeConfig(t, wsRoot, "config.json", `{"autoFormat": true, "testCoverage": 80}`)
	writeScopeConfig(t, pkg, "config.json", `{"testCoverage": 90}`)

	r := newTestResolver(home)
	got := r.Load("config.json", wsRoot, pkg)

	assert.Equal(t, map[string]any{
		"testCoverage": 90.0,
		"autoFormat":   true,
	}, got)
}

func TestLoadWithoutPackageScope(t *testing.T) {
	home := t.TempDir()
	wsRoot := t.TempDir()

	writeScopeConfig(t, home, "config.json", `{"testCoverage": 80}`)
	writeScopeConfig(t, wsRoot, "config.json", `{"autoFormat": true}`)

	r := newTestResolver(home)
	got := r.Load("config.json", wsRoot, "")

	assert.Equal(t, map[string]any{
		"testCoverage": 80.0,
		"autoFormat":   true,
	}, got)
}

func TestLoadMissingFilesYieldEmptyLayers(t *testing.T) {
	r := newTestResolver(t.TempDir())
	got := r.Load("config.json", t.TempDir(), "")
	assert.Equal(t, map[string]any{}, got)
}

func TestLoadMalformedLayerIsEmpty(t *testing.T) {
	home := t.TempDir()
	wsRoot := t.TempDir()

	writeScopeConfig(t, home, "config.json", `{"fromHome": true}`)
	writeScopeConfig(t, wsRoot, "config.json", `{not valid json`)

	r := newTestResolver(home)
	got := r.Load("config.json", wsRoot, "")

	assert.Equal(t, map[string]any{"fromHome": true}, got)
}

func TestLoadDefaultsConfigName(t *testing.T) {
	home := t.TempDir()
	writeScopeConfig(t, home, DefaultConfigName, `{"named": "default"}`)

	r := newTestResolver(home)
	assert.Equal(t, map[string]any{"named": "default"}, r.Load("", "", ""))
}

func TestLayerCachePersistsUntilCleared(t *testing.T) {
	home := t.TempDir()
	wsRoot := t.TempDir()
	writeScopeConfig(t, wsRoot, "config.json", `{"v": 1}`)

	r := newTestResolver(home)
	assert.Equal(t, map[string]any{"v": 1.0}, r.Load("config.json", wsRoot, ""))

	// A change on disk is invisible until the cache is cleared explicitly.
	writeScopeConfig(t, wsRoot, "config.json", `{"v": 2}`)
	assert.Equal(t, map[string]any{"v": 1.0}, r.Load("config.json", wsRoot, ""))

	r.ClearCache()
	assert.Equal(t, map[string]any{"v": 2.0}, r.Load("config.json", wsRoot, ""))
}

func TestPackagePathEqualToRootNotDoubleApplied(t *testing.T) {
	home := t.TempDir()
	wsRoot := t.TempDir()
	writeScopeConfig(t, wsRoot, "config.json", `{"counted": ["once"]}`)

	r := newTestResolver(home)
	got := r.Load("config.json", wsRoot, wsRoot)
	assert.Equal(t, map[string]any{"counted": []any{"once"}}, got)
}
