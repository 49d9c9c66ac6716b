// Package workspace detects multi-package workspaces and enumerates their
// member packages.
//
// Detection walks upward from a starting directory looking for a workspace
// indicator file. Each indicator is bound to exactly one convention (pnpm,
// lerna, nx, turborepo, go.work, npm workspaces, cargo workspace); the first
// indicator found fixes both the workspace root and the convention. A
// directory that belongs to no workspace yields nil, which callers must treat
// as "operate on this single directory".
//
// Package enumeration is convention-specific: pattern-based conventions read
// glob patterns from the indicator file and match them against a bounded walk
// of the tree; build-orchestrator conventions (nx, go.work) additionally read
// explicit project declarations from the tool's own descriptor files.
//
// The detector never propagates filesystem errors: an unreadable subtree is
// pruned, a missing file is a negative signal, and detection always answers.
package workspace
