package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// Scanner expands a ResourceFolder into CandidateFiles in lexical walk order.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// Expansion is the result of expanding one resource folder.
type Expansion struct {
	// Root is the absolute path of the walked folder
	Root string

	// Files are the included, non-directory entries in walk order
	Files []lqcheck.CandidateFile

	// ExcludedDirectories and ExcludedFiles are slash-separated paths relative
	// to Root that matched an exclude pattern; they are reported for diagnostics.
	ExcludedDirectories []string
	ExcludedFiles       []string
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Expand walks folder.Directory and returns every file selected by the folder's
// include patterns and not rejected by its exclude patterns.
//
// Directories matched by an exclude pattern of the form "dir/**" are not descended into.
// Invalid patterns are reported as lqcheck.ErrInvalidConfig before any walking happens.
func (s *Scanner) Expand(folder lqcheck.ResourceFolder) (Expansion, error) {
	includes := normalizePatterns(folder.Includes)
	if len(includes) == 0 {
		includes = []string{lqcheck.DefaultInclude}
	}
	excludes := normalizePatterns(folder.Excludes)

	if err := ValidatePatterns(includes); err != nil {
		return Expansion{}, err
	}
	if err := ValidatePatterns(excludes); err != nil {
		return Expansion{}, err
	}

	dir, err := s.fsProvider.Open(folder.Directory)
	if err != nil {
		return Expansion{}, fmt.Errorf("failed to open resource folder %s: %w", folder.Directory, err)
	}

	result := Expansion{Root: dir.Path()}
	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error walking path: %w", walkErr)
		}

		relPath := file.RelativePath()
		if relPath == "." {
			return nil
		}
		slashPath := filepath.ToSlash(relPath)

		if file.Info().IsDir() {
			if isExcludedDirectory(slashPath, excludes) {
				result.ExcludedDirectories = append(result.ExcludedDirectories, slashPath)
				return filesystem.SkipDir
			}
			return nil
		}

		if !matchesAny(slashPath, includes) {
			return nil
		}
		if matchesAny(slashPath, excludes) {
			result.ExcludedFiles = append(result.ExcludedFiles, slashPath)
			return nil
		}

		result.Files = append(result.Files, lqcheck.CandidateFile{
			Path:         file.Path(),
			RelativePath: relPath,
		})
		return nil
	})
	if err != nil {
		return Expansion{}, err
	}

	return result, nil
}

// ValidatePatterns checks that every pattern is a well-formed glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range normalizePatterns(patterns) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("bad glob pattern %q: %w", p, lqcheck.ErrInvalidConfig)
		}
	}
	return nil
}

// normalizePatterns converts Ant-style patterns to doublestar syntax.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "/") {
			p += "**"
		}
		out = append(out, strings.TrimPrefix(p, "./"))
	}
	return out
}

func matchesAny(slashPath string, patterns []string) bool {
	for _, p := range patterns {
		// Patterns are validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(p, slashPath); ok {
			return true
		}
	}
	return false
}

// isExcludedDirectory reports whether an exclude pattern rejects everything below dir.
func isExcludedDirectory(dir string, excludes []string) bool {
	for _, p := range excludes {
		prefix, ok := strings.CutSuffix(p, "/**")
		if !ok {
			continue
		}
		if matched, _ := doublestar.Match(prefix, dir); matched {
			return true
		}
	}
	return false
}
