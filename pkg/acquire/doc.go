// Package acquire performs the side effect for a single transfer item:
// copying a local file or downloading a remote one into the item's
// destination directory. Existing files are overwritten.
package acquire
