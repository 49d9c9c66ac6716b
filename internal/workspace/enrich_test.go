package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectscope/scope/internal/ecosystem"
)

func TestEnrichTagsPackagesIndividually(t *testing.T) {
	registry := ecosystem.NewRegistry(ecosystem.Options{})
	registry.Discover()

	// An nx workspace whose members declare themselves via project.json:
	// one JVM service, one Python package. Neither carries a package.json.
	root := t.TempDir()
	write(t, root, "nx.json", `{}`)
	write(t, root, "tools/backend/project.json", `{"name": "backend"}`)
	write(t, root, "tools/backend/pom.xml", "<project/>")
	write(t, root, "tools/ml/project.json", `{"name": "ml"}`)
	write(t, root, "tools/ml/pyproject.toml", "")

	ws := NewDetector().Detect(root)
	require.NotNil(t, ws)
	require.Len(t, ws.Packages, 2)

	Enrich(ws, registry)

	byName := map[string]string{}
	for _, pkg := range ws.Packages {
		byName[pkg.Name] = pkg.Ecosystem
	}
	assert.Equal(t, "jvm", byName["backend"])
	assert.Equal(t, "python", byName["ml"])

	// The workspace root itself has no single-package manifest.
	assert.Equal(t, []string{ecosystem.Unknown}, registry.DetectAll(root))
}

func TestEnrichUnknownPackage(t *testing.T) {
	registry := ecosystem.NewRegistry(ecosystem.Options{})
	registry.Discover()

	root := t.TempDir()
	write(t, root, "nx.json", `{}`)
	write(t, root, "tools/docs/project.json", `{"name": "docs"}`)

	ws := NewDetector().Detect(root)
	require.NotNil(t, ws)
	require.Len(t, ws.Packages, 1)

	Enrich(ws, registry)
	assert.Equal(t, ecosystem.Unknown, ws.Packages[0].Ecosystem)
}

func TestEnrichNilWorkspaceIsNoop(t *testing.T) {
	registry := ecosystem.NewRegistry(ecosystem.Options{})
	registry.Discover()
	Enrich(nil, registry) // must not panic
}
