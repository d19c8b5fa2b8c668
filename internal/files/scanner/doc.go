// Package scanner expands resource folders into the candidate files the checker inspects.
//
// Include and exclude patterns follow Ant/Maven conventions: forward or back
// slashes, `*` within one path segment, `**` across segments, and a trailing
// slash meaning "everything below". An empty include set selects every file.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// enabling production use with the OS filesystem and tests with in-memory trees.
package scanner
