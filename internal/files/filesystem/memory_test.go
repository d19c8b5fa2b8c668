package filesystem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkFiles(t *testing.T, d Directory) []string {
	t.Helper()
	var files []string
	err := d.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestMemoryFileSystem_Basic(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("root.xml", "<a/>")
	mfs.AddFile("db/changelog/001.xml", "<b/>")

	dir, err := mfs.Open("/test/project")
	require.NoError(t, err)

	assert.Equal(t, []string{"db/changelog/001.xml", "root.xml"}, walkFiles(t, dir))
}

func TestMemoryFileSystem_WalkOrderMatchesFilepathWalk(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("a.xml", "")
	mfs.AddFile("a/b.xml", "")
	mfs.AddFile("a-z.xml", "")
	mfs.AddFile("b/c.xml", "")

	dir, err := mfs.Open("/r")
	require.NoError(t, err)

	// filepath.Walk visits "a" before "a-z.xml" and "a.xml" since it sorts by name.
	assert.Equal(t, []string{"a/b.xml", "a-z.xml", "a.xml", "b/c.xml"}, walkFiles(t, dir))
}

func TestMemoryFileSystem_WalkSubdirectory(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("res/db/a.xml", "")
	mfs.AddFile("other/b.xml", "")

	dir, err := mfs.Open("res")
	require.NoError(t, err)
	assert.Equal(t, "/r/res", dir.Path())
	assert.Equal(t, []string{"db/a.xml"}, walkFiles(t, dir))
}

func TestMemoryFileSystem_SkipDir(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("keep/a.xml", "")
	mfs.AddFile("skip/b.xml", "")
	mfs.AddFile("skip/deeper/c.xml", "")

	dir, err := mfs.Open("/r")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(f File, err error) error {
		if f.Info().IsDir() && f.RelativePath() == "skip" {
			return SkipDir
		}
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/a.xml"}, files)
}

func TestMemoryFileSystem_WalkStopsOnError(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("a.xml", "")
	mfs.AddFile("b.xml", "")

	dir, err := mfs.Open("/r")
	require.NoError(t, err)

	stop := errors.New("stop")
	visited := 0
	err = dir.Walk(func(f File, err error) error {
		if f.Info().IsDir() {
			return nil
		}
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestMemoryFileSystem_WalkRecoversPanic(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("a.xml", "")

	dir, err := mfs.Open("/r")
	require.NoError(t, err)

	err = dir.Walk(func(f File, err error) error {
		if !f.Info().IsDir() {
			panic("boom")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("root.xml", "<databaseChangeLog/>")

	content, err := mfs.ReadFile("/test/project/root.xml")
	require.NoError(t, err)
	assert.Equal(t, "<databaseChangeLog/>", string(content))

	_, err = mfs.ReadFile("/test/project/missing.xml")
	assert.True(t, IsNotExist(err))

	_, err = mfs.ReadFile("/test/project")
	assert.Error(t, err)
}

func TestMemoryFileSystem_UnreadableFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	readErr := errors.New("permission denied")
	mfs.AddUnreadableFile("locked.xml", readErr)

	_, err := mfs.ReadFile("/r/locked.xml")
	assert.ErrorIs(t, err, readErr)
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("db/v1/a.xml", "x")
	mfs.AddDir("empty")

	info, err := mfs.Stat("/test/project/db/v1/a.xml")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, "a.xml", info.Name())
	assert.Equal(t, int64(1), info.Size())

	for _, dir := range []string{"/test/project", "/test/project/db/v1", "/test", "/test/project/empty"} {
		assert.True(t, IsDir(mfs, dir), dir)
	}

	_, err = mfs.Stat("/test/project/nope")
	assert.True(t, IsNotExist(err))
}

func TestMemoryFileSystem_OpenErrors(t *testing.T) {
	mfs := NewMemoryFileSystem("/r")
	mfs.AddFile("a.xml", "")

	_, err := mfs.Open("/r/missing")
	assert.True(t, IsNotExist(err))

	_, err = mfs.Open("/r/a.xml")
	assert.Error(t, err)
}
