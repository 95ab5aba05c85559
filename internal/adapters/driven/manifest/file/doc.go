// Package file implements the ManifestSource port over a JSON manifest
// file on disk, with an optional fsnotify watcher that signals when the
// manifest changes so the catalog and index can be rebuilt.
package file
