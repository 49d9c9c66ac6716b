// Package wsctx is the facade most callers touch: one object answering
// "what owns this file", "what is the effective config here", and "what
// tool applies" for a directory tree.
//
// The context computes a workspace snapshot lazily on first use and keeps it
// until Refresh. Snapshots are immutable values swapped atomically under a
// read/write lock, so a refresh racing with in-flight reads never exposes a
// half-built workspace; concurrent cold starts are coalesced so detection
// runs once.
package wsctx
