// Package filesystem provides the filesystem abstraction the checker walks.
//
// Resource folders are traversed through FileSystemProvider so the scanner and
// the migration-folder classifier can run against either the OS filesystem or
// an in-memory tree in tests.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories, reads files, stats paths
//   - Directory: A directory that can be walked in lexical order
//   - File: An individual file or directory with its relative path
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
