// Package pkgmgr picks the concrete package manager for a directory.
//
// Resolution walks a fixed chain and stops at the first signal: environment
// override, project-local preference, manifest field, lock file, user-global
// preference, tool present on the host, ecosystem default. The chain always
// answers; every Choice records which source decided it so callers and tests
// can tell a forced answer from a fallback.
//
// The resolver is informed by, but independent of, ecosystem detection: it
// consults the ecosystem registry only for the host-tool candidate list, the
// final default, and the lifecycle command templates.
package pkgmgr
