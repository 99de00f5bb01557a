// Package registry provides a generic, thread-safe name-to-item registry.
// Resolver tables are built on top of it.
package registry
