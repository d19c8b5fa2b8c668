package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// osFile implements File interface for OS filesystem
type osFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string         { return f.absPath }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Info() FileInfo       { return f.info }

func (f *osFile) ReadContent() ([]byte, error) {
	return os.ReadFile(f.absPath)
}

// osDirectory implements Directory interface for OS filesystem
type osDirectory struct {
	absPath string
}

func (d *osDirectory) Path() string { return d.absPath }

// Walk visits the directory itself and everything below it in lexical order.
// Symbolic links to directories are followed unless they point back at a
// directory already being walked.
func (d *osDirectory) Walk(fn WalkFunc) error {
	info, err := os.Stat(d.absPath)
	if err != nil {
		return d.visit(d.absPath, nil, err, fn)
	}
	err = d.walk(d.absPath, info, []fs.FileInfo{info}, fn)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

// walk visits path and, for directories, its entries. ancestors holds the
// resolved directories on the current branch, path's own included.
func (d *osDirectory) walk(path string, info fs.FileInfo, ancestors []fs.FileInfo, fn WalkFunc) error {
	if err := d.visit(path, info, nil, fn); err != nil {
		if info.IsDir() && errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if err := d.visit(path, info, err, fn); err != nil && !errors.Is(err, SkipDir) {
			return err
		}
		return nil
	}

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())
		entryInfo, err := resolveEntry(entryPath, entry)
		if err != nil {
			if err := d.visit(entryPath, nil, err, fn); err != nil {
				if errors.Is(err, SkipDir) {
					return nil
				}
				return err
			}
			continue
		}

		next := ancestors
		if entryInfo.IsDir() {
			if isAncestor(entryInfo, ancestors) {
				continue
			}
			next = append(ancestors[:len(ancestors):len(ancestors)], entryInfo)
		}

		if err := d.walk(entryPath, entryInfo, next, fn); err != nil {
			if errors.Is(err, SkipDir) {
				return nil
			}
			return err
		}
	}
	return nil
}

// resolveEntry returns the entry's info, following a symbolic link to its
// target. A dangling link is reported as the link itself.
func resolveEntry(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Info()
	}
	if target, err := os.Stat(path); err == nil {
		return target, nil
	}
	return os.Lstat(path)
}

func isAncestor(dir fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, dir) {
			return true
		}
	}
	return false
}

// visit calls fn for path, converting a panic into an error.
func (d *osDirectory) visit(path string, info fs.FileInfo, walkErr error, fn WalkFunc) (callbackErr error) {
	defer func() {
		if r := recover(); r != nil {
			callbackErr = fmt.Errorf("walk callback panicked at %s: %v", path, r)
		}
	}()

	if walkErr != nil {
		return fn(nil, walkErr)
	}

	relPath, relErr := filepath.Rel(d.absPath, path)
	if relErr != nil {
		return fn(nil, fmt.Errorf("failed to get relative path: %w", relErr))
	}

	return fn(&osFile{
		absPath: path,
		relPath: relPath,
		info:    info,
	}, nil)
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &osDirectory{absPath: absPath}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

var _ FileSystemProvider = (*OSFileSystem)(nil)
