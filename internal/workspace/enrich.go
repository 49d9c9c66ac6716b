package workspace

import "github.com/projectscope/scope/internal/ecosystem"

// Enrich tags every package in the workspace with its own ecosystem, detected
// against the package's directory. This is what lets one workspace hold
// packages from different ecosystems; the workspace itself stays untagged.
func Enrich(ws *Workspace, registry *ecosystem.Registry) {
	if ws == nil || registry == nil {
		return
	}
	for _, pkg := range ws.Packages {
		pkg.Ecosystem = registry.Detect(pkg.Path)
	}
}
