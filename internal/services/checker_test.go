package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/lqcheck/internal/changelog"
	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/internal/logging"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

func newTestService(verbose bool) (*CheckService, *filesystem.MemoryFileSystem, *bytes.Buffer) {
	fs := filesystem.NewMemoryFileSystem("/project")
	var logs bytes.Buffer
	return NewCheckService(fs, logging.NewWriterLogger(&logs, verbose)), fs, &logs
}

func changelogXML(logicalFilePath string, changeSets ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<databaseChangeLog xmlns="http://www.liquibase.org/xml/ns/dbchangelog" logicalFilePath="` + logicalFilePath + `">` + "\n")
	for _, cs := range changeSets {
		b.WriteString("  " + cs + "\n")
	}
	b.WriteString("</databaseChangeLog>\n")
	return b.String()
}

func folder(dir string) lqcheck.ResourceFolder {
	return lqcheck.ResourceFolder{Directory: dir, Includes: []string{"**/*.xml"}}
}

func TestNewCheckService_NilArgs(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/")
	assert.Panics(t, func() { NewCheckService(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewCheckService(fs, nil) })
}

func TestCheck_CleanProject(t *testing.T) {
	s, fs, logs := newTestService(false)
	fs.AddFile("res/db/_master.xml", changelogXML("db/_master.xml"))
	fs.AddFile("res/db/initDb.xml", changelogXML("db/initDb.xml", `<changeSet author="a" id="1" context="init"/>`))
	fs.AddFile("res/db/v1/001.xml", changelogXML("001.xml", `<changeSet author="a" id="2" context="prod"/>`))
	fs.AddFile("res/logback.xml", `<configuration/>`)

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	require.NoError(t, err)

	assert.False(t, report.HasViolations())
	assert.Equal(t, 4, report.FilesScanned())
	assert.Equal(t, 3, report.ChangelogsChecked())
	assert.Contains(t, logs.String(), "no violations found")
}

func TestCheck_ReportsViolationsInDiscoveryOrder(t *testing.T) {
	s, fs, logs := newTestService(false)
	fs.AddFile("res1/a.xml", changelogXML("wrong.xml", `<changeSet author="alice" id="1"/>`))
	fs.AddFile("res1/b.xml", changelogXML("b.xml", `<changeSet author="bob" id="2"/>`))
	fs.AddFile("res2/c.xml", changelogXML("elsewhere/c.xml"))

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res1"), folder("/project/res2")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lqcheck.ErrViolationsFound))
	assert.Contains(t, err.Error(), "found 4")

	require.Len(t, report.Violations, 4)
	got := make([]string, 0, len(report.Violations))
	for _, v := range report.Violations {
		got = append(got, string(v.Kind)+" "+v.File)
	}
	assert.Equal(t, []string{
		"logical-file-path /project/res1/a.xml",
		"missing-context /project/res1/a.xml",
		"missing-context /project/res1/b.xml",
		"logical-file-path /project/res2/c.xml",
	}, got)

	assert.Equal(t, 3, report.Folders[0].Violations)
	assert.Equal(t, 1, report.Folders[1].Violations)
	assert.Equal(t, 4, strings.Count(logs.String(), "[WARN] "))
}

func TestCheck_MissingFolderIsSkipped(t *testing.T) {
	s, fs, logs := newTestService(true)
	fs.AddFile("res/a.xml", changelogXML("a.xml", `<changeSet author="a" id="1"/>`))

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/missing"), folder("/project/res")})
	require.ErrorIs(t, err, lqcheck.ErrViolationsFound)

	require.Len(t, report.Folders, 2)
	assert.True(t, report.Folders[0].Skipped)
	assert.Equal(t, 0, report.Folders[0].Violations)
	assert.False(t, report.Folders[1].Skipped)
	assert.Len(t, report.Violations, 1, "later folders are still scanned")
	assert.Contains(t, logs.String(), "[VERBOSE] == Resource folder [/project/missing] does not exist. Skipping.")
}

func TestCheck_OnlyMissingFolders(t *testing.T) {
	s, _, _ := newTestService(false)

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/nope")})
	require.NoError(t, err)
	assert.False(t, report.HasViolations())
}

func TestCheck_NonChangelogIsSkippedSilently(t *testing.T) {
	s, fs, logs := newTestService(false)
	fs.AddFile("res/foo.xml", `<foo><changeSet id="1"/></foo>`)

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 1, report.FilesScanned())
	assert.Equal(t, 0, report.ChangelogsChecked())
	assert.NotContains(t, logs.String(), "foo.xml", "non-changelogs are only mentioned in verbose mode")
}

func TestCheck_NonChangelogIsMentionedWhenVerbose(t *testing.T) {
	s, fs, logs := newTestService(true)
	fs.AddFile("res/foo.xml", `<foo/>`)

	_, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "File [/project/res/foo.xml] is not a databasechangelog file. Skipping.")
}

func TestCheck_ParseErrorAbortsImmediately(t *testing.T) {
	s, fs, _ := newTestService(false)
	fs.AddFile("res1/a.xml", changelogXML("wrong.xml"))
	fs.AddFile("res1/b.xml", `<databaseChangeLog><changeSet>`)
	fs.AddFile("res1/c.xml", changelogXML("also-wrong.xml"))
	fs.AddFile("res2/d.xml", changelogXML("wrong-too.xml"))

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res1"), folder("/project/res2")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lqcheck.ErrMalformedChangelog))
	assert.False(t, errors.Is(err, lqcheck.ErrViolationsFound))

	var parseErr *changelog.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "/project/res1/b.xml", parseErr.Path)

	require.Len(t, report.Violations, 1, "only a.xml was checked before the abort")
	assert.Equal(t, "/project/res1/a.xml", report.Violations[0].File)
	assert.Len(t, report.Folders, 1, "res2 is never scanned")
}

func TestCheck_UnreadableFileAborts(t *testing.T) {
	s, fs, _ := newTestService(false)
	readErr := errors.New("permission denied")
	fs.AddUnreadableFile("res/locked.xml", readErr)

	_, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lqcheck.ErrUnreadableFile))
	assert.True(t, errors.Is(err, readErr))
	assert.Equal(t, lqcheck.ExitMalformedFile, lqcheck.ExitCodeForError(err))
}

func TestCheck_FolderIsAFile(t *testing.T) {
	s, fs, _ := newTestService(false)
	fs.AddFile("res", "not a directory")

	_, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	assert.ErrorIs(t, err, lqcheck.ErrInvalidConfig)
}

func TestCheck_InvalidPattern(t *testing.T) {
	s, fs, _ := newTestService(false)
	fs.AddFile("res/a.xml", changelogXML("a.xml"))

	_, err := s.Check([]lqcheck.ResourceFolder{{Directory: "/project/res", Includes: []string{"[bad"}}})
	assert.ErrorIs(t, err, lqcheck.ErrInvalidConfig)
}

func TestCheck_ExcludesAreHonored(t *testing.T) {
	s, fs, logs := newTestService(true)
	fs.AddFile("res/db/a.xml", changelogXML("db/a.xml"))
	fs.AddFile("res/generated/b.xml", changelogXML("wrong.xml"))

	report, err := s.Check([]lqcheck.ResourceFolder{{
		Directory: "/project/res",
		Includes:  []string{"**/*.xml"},
		Excludes:  []string{"generated/**"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesScanned())
	assert.Contains(t, logs.String(), "== We do not scan folders: [generated]")
}

func TestCheck_MigrationLayout(t *testing.T) {
	s, fs, _ := newTestService(false)
	fs.AddFile("res/a/b/initDb.xml", changelogXML("a/b/initDb.xml"))
	fs.AddFile("res/a/b/v2/c.xml", changelogXML("c.xml", `<changeSet author="x" id="1" context="prod"/>`))
	fs.AddFile("res/a/b/v2/_master.xml", changelogXML("_master.xml"))

	report, err := s.Check([]lqcheck.ResourceFolder{folder("/project/res")})
	require.ErrorIs(t, err, lqcheck.ErrViolationsFound)

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, "/project/res/a/b/v2/_master.xml", v.File)
	assert.Equal(t, "a/b/v2/_master.xml", v.Expected)
}
