// Package file provides the TOML-backed configuration store.
// Nested tables are exposed as dot-notation keys ("storage.root") and
// written back as nested tables.
package file
