package pkgmgr

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectscope/scope/internal/ecosystem"
)

// newTestResolver returns a resolver with every external seam stubbed out:
// no env override, no tools on PATH, home pointed at an empty temp dir.
func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	registry := ecosystem.NewRegistry(ecosystem.Options{})
	registry.Discover()

	home := t.TempDir()
	r := NewResolver(registry)
	r.getenv = func(string) string { return "" }
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	r.homeDir = func() (string, error) { return home, nil }
	return r
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0644))
}

func TestEnvOverrideBeatsLockfile(t *testing.T) {
	r := newTestResolver(t)
	r.getenv = func(key string) string {
		if key == EnvOverride {
			return "pnpm"
		}
		return ""
	}

	dir := t.TempDir()
	touch(t, dir, "package-lock.json")

	got := r.Resolve(dir)
	assert.Equal(t, "pnpm", got.Name)
	assert.Equal(t, SourceEnv, got.Source)
}

func TestProjectPreferenceBeatsManifestField(t *testing.T) {
	r := newTestResolver(t)

	dir := t.TempDir()
	require.NoError(t, SavePreference(dir, "yarn"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"packageManager": "pnpm@9.1.0"}`), 0644))

	got := r.Resolve(dir)
	assert.Equal(t, "yarn", got.Name)
	assert.Equal(t, SourceProjectConfig, got.Source)
}

func TestManifestFieldBeatsLockfile(t *testing.T) {
	r := newTestResolver(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"packageManager": "pnpm@9.1.0"}`), 0644))
	touch(t, dir, "yarn.lock")

	got := r.Resolve(dir)
	assert.Equal(t, "pnpm", got.Name)
	assert.Equal(t, SourceManifestField, got.Source)
}

func TestLockfileDecidesWhenNothingElseDoes(t *testing.T) {
	tests := []struct {
		lockfile string
		want     string
	}{
		{"pnpm-lock.yaml", "pnpm"},
		{"yarn.lock", "yarn"},
		{"package-lock.json", "npm"},
		{"uv.lock", "uv"},
		{"poetry.lock", "poetry"},
		{"Cargo.lock", "cargo"},
		{"go.sum", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.lockfile, func(t *testing.T) {
			r := newTestResolver(t)
			dir := t.TempDir()
			touch(t, dir, tt.lockfile)

			got := r.Resolve(dir)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, SourceLockfile, got.Source)
		})
	}
}

func TestGlobalPreference(t *testing.T) {
	r := newTestResolver(t)
	home, err := r.homeDir()
	require.NoError(t, err)
	require.NoError(t, SavePreference(home, "bun"))

	got := r.Resolve(t.TempDir())
	assert.Equal(t, "bun", got.Name)
	assert.Equal(t, SourceGlobalConfig, got.Source)
}

func TestHostToolCandidateOrder(t *testing.T) {
	r := newTestResolver(t)
	r.lookPath = func(name string) (string, error) {
		if name == "yarn" || name == "npm" {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	// javascript candidates are pnpm, yarn, bun, npm: yarn is the first hit.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{}`), 0644))

	got := r.Resolve(dir)
	assert.Equal(t, "yarn", got.Name)
	assert.Equal(t, SourceHostTool, got.Source)
}

func TestEcosystemDefault(t *testing.T) {
	r := newTestResolver(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(""), 0644))

	got := r.Resolve(dir)
	assert.Equal(t, "pip", got.Name)
	assert.Equal(t, SourceDefault, got.Source)
}

func TestUnknownEcosystemFallsBack(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(t.TempDir())
	assert.Equal(t, fallbackManager, got.Name)
	assert.Equal(t, SourceDefault, got.Source)
	assert.Equal(t, Commands{}, got.Commands)
}

func TestResolveOnNonexistentDir(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, fallbackManager, got.Name)
	assert.Equal(t, SourceDefault, got.Source)
}

func TestCommandsRenderedForResolvedManager(t *testing.T) {
	r := newTestResolver(t)

	dir := t.TempDir()
	touch(t, dir, "pnpm-lock.yaml")

	got := r.Resolve(dir)
	require.Equal(t, "pnpm", got.Name)
	assert.Equal(t, "pnpm install", got.Commands.Install)
	assert.Equal(t, "pnpm test", got.Commands.Test)
	assert.Equal(t, "pnpm run build", got.Commands.Build)
}

func TestMalformedPreferenceIgnored(t *testing.T) {
	r := newTestResolver(t)

	dir := t.TempDir()
	scopeDir := filepath.Join(dir, ".scope")
	require.NoError(t, os.MkdirAll(scopeDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(scopeDir, PreferenceFileName), []byte("{broken"), 0644))
	touch(t, dir, "yarn.lock")

	got := r.Resolve(dir)
	assert.Equal(t, "yarn", got.Name)
	assert.Equal(t, SourceLockfile, got.Source)
}

func TestSavePreferenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, SavePreference(dir, "pnpm"))

	data, err := os.ReadFile(preferencePath(dir))
	require.NoError(t, err)

	var pref Preference
	require.NoError(t, json.Unmarshal(data, &pref))
	assert.Equal(t, "pnpm", pref.PackageManager)
	assert.True(t, pref.SetAt.After(before))

	name, ok := loadPreference(dir)
	require.True(t, ok)
	assert.Equal(t, "pnpm", name)
}

func TestSavePreferenceRejectsEmptyName(t *testing.T) {
	assert.Error(t, SavePreference(t.TempDir(), ""))
}

func TestSavePreferenceUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	// Occupy the .scope path with a file so MkdirAll must fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scope"), []byte{}, 0644))

	assert.Error(t, SavePreference(dir, "pnpm"))
}
