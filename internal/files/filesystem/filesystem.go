package filesystem

import (
	"errors"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// SkipDir may be returned from a WalkFunc to skip the directory being visited.
var SkipDir = fs.SkipDir

// File represents an individual file or directory encountered during a walk
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// WalkFunc is called for every entry below a Directory, the root included.
// Returning SkipDir on a directory skips its contents; any other error stops the walk.
type WalkFunc func(File, error) error

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order
	Walk(fn WalkFunc) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path can be stat'ed through provider.
func Exists(provider FileSystemProvider, path string) bool {
	_, err := provider.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(provider FileSystemProvider, path string) bool {
	info, err := provider.Stat(path)
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err indicates a missing path.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
