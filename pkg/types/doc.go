// Package types defines the core data types shared across pluck: the
// filesystem interface, transfer items and the per-run report.
package types
