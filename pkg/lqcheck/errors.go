package lqcheck

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := checker.Check(folders)
//	if errors.Is(err, lqcheck.ErrViolationsFound) {
//	    // Conventions were broken; report holds the details
//	}
var (
	// ErrViolationsFound indicates at least one changelog broke a convention.
	// It is returned only after every resource folder has been scanned.
	ErrViolationsFound = errors.New("liquibase convention violations found")

	// ErrMalformedChangelog indicates a candidate file could not be parsed as XML.
	// The scan stops at the first such file.
	ErrMalformedChangelog = errors.New("malformed changelog")

	// ErrUnreadableFile indicates a candidate file could not be read.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// usageErrorPatterns are fragments of the errors cobra returns for bad invocations.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrViolationsFound):
		return ExitViolationsFound
	case errors.Is(err, ErrMalformedChangelog), errors.Is(err, ErrUnreadableFile):
		return ExitMalformedFile
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
