// Package section builds the declarative tree of acquisition instructions.
//
// A Section is one destination directory with an ordered list of items and
// an ordered list of child sections. All sections of a tree share one
// resolver registry and one base directory against which relative paths
// are resolved. Every declaration method validates its input immediately
// and returns a configuration error instead of recording a bad item.
package section
