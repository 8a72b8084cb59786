// Package corpus loads documentation sources from the filesystem.
//
// A corpus is a directory tree of markdown pages partitioned by service:
// the first path segment names the service ("ecs/instances.md" belongs to
// ecs). An optional sidecar JSON file next to a page ("instances.json")
// carries provenance metadata (source url, document type).
package corpus
