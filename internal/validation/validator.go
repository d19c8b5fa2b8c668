package validation

import (
	"fmt"

	"github.com/vvka-141/lqcheck/internal/changelog"
	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// Validator runs the convention checks for a single changelog.
// The filesystem provider is consulted for the migration-folder marker.
type Validator struct {
	fsProvider filesystem.FileSystemProvider
}

// NewValidator creates a validator over the given filesystem.
// Panics if fsProvider is nil.
func NewValidator(fsProvider filesystem.FileSystemProvider) *Validator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Validator{fsProvider: fsProvider}
}

// Validate runs CheckLogicalPath then CheckContexts and returns their
// violations in that order. A file yields zero, one or two violations.
func (v *Validator) Validate(file lqcheck.CandidateFile, doc *changelog.Document) []lqcheck.Violation {
	var violations []lqcheck.Violation
	if violation := v.CheckLogicalPath(file, doc); violation != nil {
		violations = append(violations, *violation)
	}
	if violation := CheckContexts(file, doc); violation != nil {
		violations = append(violations, *violation)
	}
	return violations
}

// CheckLogicalPath verifies the root's logicalFilePath attribute.
//
// _master.xml and files outside a migration folder must declare their full
// relative path; files inside a migration folder declare only their base name.
func (v *Validator) CheckLogicalPath(file lqcheck.CandidateFile, doc *changelog.Document) *lqcheck.Violation {
	normalizedRelative := NormalizePath(file.RelativePath)
	normalizedFromXML := NormalizePath(doc.LogicalFilePath)
	fileName := file.Name()

	if fileName == lqcheck.MasterFileName || !changelog.IsMigrationFolder(v.fsProvider, file.Path) {
		if matchesRelativePath(normalizedFromXML, normalizedRelative) {
			return nil
		}
		return logicalPathViolation(file, normalizedFromXML, normalizedRelative)
	}

	if matchesBaseName(doc.LogicalFilePath, fileName) {
		return nil
	}
	return logicalPathViolation(file, doc.LogicalFilePath, fileName)
}

// matchesRelativePath compares two separator-normalized paths.
func matchesRelativePath(normalizedFromXML, normalizedRelative string) bool {
	return normalizedFromXML == normalizedRelative
}

// matchesBaseName compares the attribute as written in the document with the
// file's base name. A base name never contains a separator.
func matchesBaseName(rawAttribute, fileName string) bool {
	return rawAttribute == fileName
}

func logicalPathViolation(file lqcheck.CandidateFile, found, expected string) *lqcheck.Violation {
	return &lqcheck.Violation{
		Kind: lqcheck.KindLogicalFilePath,
		File: file.Path,
		Message: fmt.Sprintf("Logical file path of file\n\t    [%s]\n\t  is not correct. Found\n\t    [%s]\n\t  and should be\n\t    [%s].",
			file.Path, found, expected),
		Found:    found,
		Expected: expected,
	}
}

// CheckContexts reports the first changeSet without a context attribute.
//
// Scanning stops at the first miss, so later changeSets without a context in
// the same file are not reported until the first one is fixed.
func CheckContexts(file lqcheck.CandidateFile, doc *changelog.Document) *lqcheck.Violation {
	cs, missing := doc.FirstWithoutContext()
	if !missing {
		return nil
	}
	return &lqcheck.Violation{
		Kind:    lqcheck.KindMissingContext,
		File:    file.Path,
		Message: fmt.Sprintf("Context is missing in file [%s] and changeset [author=%s] [id=%s].", file.Path, cs.Author, cs.ID),
		Author:  cs.Author,
		ID:      cs.ID,
	}
}
