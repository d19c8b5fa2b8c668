package services

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/lqcheck/internal/changelog"
	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/internal/files/scanner"
	"github.com/vvka-141/lqcheck/internal/validation"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// CheckService walks resource folders and validates every changelog found.
// Thread-Safety: NOT safe for concurrent Check() calls on the same instance.
type CheckService struct {
	fsProvider filesystem.FileSystemProvider
	logger     lqcheck.Logger
	scanner    *scanner.Scanner
	validator  *validation.Validator
}

// NewCheckService creates a CheckService over the given filesystem.
// Panics on nil dependencies.
func NewCheckService(fsProvider filesystem.FileSystemProvider, logger lqcheck.Logger) *CheckService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &CheckService{
		fsProvider: fsProvider,
		logger:     logger,
		scanner:    scanner.NewScannerWithFS(fsProvider),
		validator:  validation.NewValidator(fsProvider),
	}
}

// Check scans every folder in order and returns the collected report.
//
// Violations never stop the scan: they are logged as warnings and, once all
// folders are done, turned into a single error wrapping lqcheck.ErrViolationsFound.
// A file that cannot be read or parsed aborts the scan immediately; the report
// then holds whatever was collected before it.
func (s *CheckService) Check(folders []lqcheck.ResourceFolder) (lqcheck.Report, error) {
	s.logger.Info("Liquibase changelog check started.")

	var report lqcheck.Report
	for _, folder := range folders {
		result, violations, err := s.checkFolder(folder)
		report.Folders = append(report.Folders, result)
		report.Violations = append(report.Violations, violations...)
		if err != nil {
			return report, err
		}
	}

	if report.HasViolations() {
		return report, fmt.Errorf("found %d liquibase convention violation(s), see previous log messages: %w",
			len(report.Violations), lqcheck.ErrViolationsFound)
	}

	s.logger.Info("Checked %d changelog(s) in %d file(s), no violations found.",
		report.ChangelogsChecked(), report.FilesScanned())
	return report, nil
}

func (s *CheckService) checkFolder(folder lqcheck.ResourceFolder) (lqcheck.FolderResult, []lqcheck.Violation, error) {
	result := lqcheck.FolderResult{Directory: folder.Directory}

	info, err := s.fsProvider.Stat(folder.Directory)
	if err != nil {
		s.logger.Verbose("== Resource folder [%s] does not exist. Skipping.", absPath(folder.Directory))
		result.Skipped = true
		return result, nil, nil
	}
	if !info.IsDir() {
		return result, nil, fmt.Errorf("resource folder %s is not a directory: %w", folder.Directory, lqcheck.ErrInvalidConfig)
	}

	expansion, err := s.scanner.Expand(folder)
	if err != nil {
		return result, nil, fmt.Errorf("failed to scan resource folder %s: %w", folder.Directory, err)
	}

	s.logger.Verbose("== Scanning resource folder [%s]", expansion.Root)
	s.logger.Verbose("== We do not scan folders: %v", expansion.ExcludedDirectories)
	s.logger.Verbose("== We do not scan files: %v", expansion.ExcludedFiles)

	var violations []lqcheck.Violation
	for _, file := range expansion.Files {
		kind, found, err := s.checkFile(file)
		if err != nil {
			result.Violations = len(violations)
			return result, violations, err
		}
		if kind == fileSkipped {
			continue
		}
		result.FilesScanned++
		if kind == fileChecked {
			result.ChangelogsChecked++
		}
		violations = append(violations, found...)
	}

	result.Violations = len(violations)
	return result, violations, nil
}

type fileOutcome int

const (
	fileSkipped fileOutcome = iota // not a regular file
	fileIgnored                    // regular file, but not a changelog
	fileChecked
)

// checkFile classifies and validates a single candidate.
func (s *CheckService) checkFile(file lqcheck.CandidateFile) (fileOutcome, []lqcheck.Violation, error) {
	info, err := s.fsProvider.Stat(file.Path)
	if err != nil || !info.Mode().IsRegular() {
		return fileSkipped, nil, nil
	}

	content, err := s.fsProvider.ReadFile(file.Path)
	if err != nil {
		return fileSkipped, nil, fmt.Errorf("failed to read %s: %w: %w", file.Path, lqcheck.ErrUnreadableFile, err)
	}

	outcome := changelog.Classify(content, file.Path)
	switch outcome.Kind {
	case changelog.KindParseError:
		return fileSkipped, nil, outcome.Err
	case changelog.KindNotAChangelog:
		s.logger.Verbose("File [%s] is not a databasechangelog file. Skipping.", file.Path)
		return fileIgnored, nil, nil
	}

	s.logger.Verbose("Checking databasechangelog [%s].", file.Path)
	violations := s.validator.Validate(file, outcome.Document)
	for _, v := range violations {
		s.logger.Warn("%s", v.Message)
	}
	return fileChecked, violations, nil
}

// absPath returns an absolute form of path for log messages, or path itself.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
