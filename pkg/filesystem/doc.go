// Package filesystem provides filesystem implementations for pluck.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero-backed one used for in-memory tests.
// It also carries the directory and copy helpers the acquirer relies on.
package filesystem
