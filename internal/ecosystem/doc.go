// Package ecosystem identifies which language/toolchain a directory belongs to.
//
// An ecosystem is described declaratively by a Descriptor: a set of indicator
// filenames whose mere presence in a directory asserts the ecosystem, plus the
// tool commands and package managers that apply once the ecosystem is known.
//
// Descriptors come from three layers, in ascending precedence:
//
//  1. Built-in descriptors compiled into the binary
//  2. User-level descriptor files (~/.scope/ecosystems/*.yaml)
//  3. Project-level descriptor files (<project>/.scope/ecosystems/*.yaml)
//
// A later layer registering the same type key replaces the earlier registration
// entirely, so a project can shadow or extend the built-in set without
// recompiling. Malformed descriptor files are skipped, never fatal.
//
// Detection is a total function: it runs speculatively against arbitrary,
// possibly unreadable directories, so it always answers (the Unknown sentinel
// at worst) and never returns an error.
package ecosystem
