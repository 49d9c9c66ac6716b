// Package config resolves effective configuration for a location by deep
// merging up to three scopes: user-global, workspace root, and package.
//
// Configuration is schema-less: each layer is an arbitrary JSON tree read
// from .scope/<name> under the scope's directory. Missing or unparsable
// files contribute an empty layer rather than an error, so resolution is
// total. The merge rule is fixed: objects merge key by key, arrays and
// primitives replace wholesale, and an explicit null overwrites.
package config
