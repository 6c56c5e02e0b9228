// Package catalog supplies timer definitions by key.
//
// Definitions decode from JSON or YAML files named <key>.json, <key>.yaml or
// <key>.yml. A Registry is seeded with the embedded built-in timers and any
// directories listed in Config, and callers may Register more at runtime.
// Every definition is validated before it is stored, so Fetch only ever
// returns definitions that timer.Build is expected to accept.
package catalog
