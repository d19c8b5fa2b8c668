package lqcheck

import (
	"path/filepath"

	"github.com/google/uuid"
)

// ResourceFolder is a directory root plus the glob patterns selecting files under it.
// Patterns use forward slashes and are matched against paths relative to Directory.
type ResourceFolder struct {
	Directory string
	Includes  []string
	Excludes  []string
}

// CandidateFile is a regular file selected from a ResourceFolder.
type CandidateFile struct {
	// Path is the absolute path to the file
	Path string

	// RelativePath is the path relative to the resource folder root,
	// using the platform's separators
	RelativePath string
}

// Name returns the file's base name.
func (f CandidateFile) Name() string {
	return filepath.Base(f.Path)
}

// ViolationKind identifies which convention a Violation breaks.
type ViolationKind string

const (
	// KindLogicalFilePath marks a logicalFilePath that does not match the file location.
	KindLogicalFilePath ViolationKind = "logical-file-path"

	// KindMissingContext marks a changeSet declared without a context attribute.
	KindMissingContext ViolationKind = "missing-context"
)

// Violation is a single convention failure. Severity is always "error".
type Violation struct {
	Kind    ViolationKind
	File    string // absolute path of the offending changelog
	Message string

	// Found and Expected are set for KindLogicalFilePath.
	Found    string
	Expected string

	// Author and ID identify the changeSet for KindMissingContext.
	Author string
	ID     string
}

// NamespaceViolation is the UUID v5 namespace for violation fingerprints.
var NamespaceViolation = uuid.NewSHA1(uuid.NameSpaceURL, []byte("lqcheck/violation/v1"))

// Fingerprint returns a deterministic identifier for the violation, stable across
// runs as long as the file, kind and offending values are unchanged.
func (v Violation) Fingerprint() uuid.UUID {
	key := string(v.Kind) + "\x00" + filepath.ToSlash(v.File)
	switch v.Kind {
	case KindLogicalFilePath:
		key += "\x00" + v.Found + "\x00" + v.Expected
	case KindMissingContext:
		key += "\x00" + v.Author + "\x00" + v.ID
	}
	return uuid.NewSHA1(NamespaceViolation, []byte(key))
}

// FolderResult summarizes the scan of one resource folder.
type FolderResult struct {
	Directory         string
	Skipped           bool // root directory does not exist
	FilesScanned      int
	ChangelogsChecked int
	Violations        int
}

// Report is the outcome of a complete check across all resource folders.
// Violations are kept in discovery order.
type Report struct {
	Folders    []FolderResult
	Violations []Violation
}

// HasViolations reports whether any folder produced at least one violation.
func (r Report) HasViolations() bool {
	return len(r.Violations) > 0
}

// FilesScanned returns the number of candidate files inspected across all folders.
func (r Report) FilesScanned() int {
	total := 0
	for _, f := range r.Folders {
		total += f.FilesScanned
	}
	return total
}

// ChangelogsChecked returns the number of changelog documents validated across all folders.
func (r Report) ChangelogsChecked() int {
	total := 0
	for _, f := range r.Folders {
		total += f.ChangelogsChecked
	}
	return total
}
