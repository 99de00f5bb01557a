// Package testutil provides utilities for testing pluck components.
//
// Key components:
//   - NewMemoryFS / WriteFiles: in-memory filesystems seeded inline
//   - FileServer: an httptest server serving canned files and counting hits
//   - MockFetcher: a testify mock of acquire.Fetcher
//   - AssertFileContent: content checks against any types.FS
//
// All test data should be defined inline, not in external files.
package testutil
