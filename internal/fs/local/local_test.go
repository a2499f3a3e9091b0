package local

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestListDirectory(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(dir, "B.txt"), []byte("b"))

	entries, err := l.ListDirectory(ctx, dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "sub", entries[0].Name)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, "a.txt", entries[1].Name)
	assert.Equal(t, "B.txt", entries[2].Name)
	require.NotNil(t, entries[1].Size)
	assert.Equal(t, int64(1), *entries[1].Size)
}

func TestListDirectoryErrors(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()

	_, err := l.ListDirectory(ctx, filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotFound)

	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, []byte("x"))
	_, err = l.ListDirectory(ctx, file)
	assert.ErrorIs(t, err, fs.ErrNotADirectory)
}

func TestStat(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "data.bin")
	writeFile(t, file, []byte("12345"))

	e, err := l.Stat(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", e.Name)
	assert.True(t, e.IsFile)
	require.NotNil(t, e.Size)
	assert.Equal(t, int64(5), *e.Size)
	assert.NotNil(t, e.Modified)
}

func TestDelete(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	sub := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "deep"), 0o755))
	writeFile(t, filepath.Join(sub, "deep", "f.txt"), []byte("x"))

	require.NoError(t, l.Delete(ctx, sub))
	_, err := os.Stat(sub)
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, l.Delete(ctx, sub), fs.ErrNotFound)
}

func TestRename(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "old.txt"), []byte("x"))

	require.NoError(t, l.Rename(ctx, filepath.Join(dir, "old.txt"), "new.txt"))
	_, err := os.Stat(filepath.Join(dir, "new.txt"))
	assert.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.txt"), []byte("y"))
	err = l.Rename(ctx, filepath.Join(dir, "new.txt"), "other.txt")
	assert.ErrorIs(t, err, fs.ErrAlreadyExists)
}

func TestMkdir(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, l.Mkdir(ctx, dir, "child"))
	fi, err := os.Stat(filepath.Join(dir, "child"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	assert.ErrorIs(t, l.Mkdir(ctx, dir, "child"), fs.ErrAlreadyExists)
}

func TestCopyTree(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	writeFile(t, filepath.Join(src, "nested", "f.txt"), []byte("deep"))
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.Mkdir(dst, 0o755))

	require.NoError(t, l.Copy(ctx, []string{src}, dst))

	data, err := os.ReadFile(filepath.Join(dst, "src", "nested", "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(data))

	// original still present
	_, err = os.Stat(filepath.Join(src, "nested", "f.txt"))
	assert.NoError(t, err)
}

func TestMove(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "moveme.txt")
	writeFile(t, src, []byte("content"))
	dst := filepath.Join(dir, "dest")
	require.NoError(t, os.Mkdir(dst, 0o755))

	require.NoError(t, l.Move(ctx, []string{src}, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(dst, "moveme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestReadContent(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()

	text := filepath.Join(dir, "t.txt")
	writeFile(t, text, []byte("hello world"))
	c, err := l.ReadContent(ctx, text, 0)
	require.NoError(t, err)
	assert.Equal(t, fs.EncodingText, c.Encoding)
	assert.Equal(t, "hello world", c.Content)
	assert.NotEmpty(t, c.MimeType)

	bin := filepath.Join(dir, "b.bin")
	writeFile(t, bin, []byte{0xff, 0xfe, 0x00})
	c, err = l.ReadContent(ctx, bin, 0)
	require.NoError(t, err)
	assert.Equal(t, fs.EncodingBase64, c.Encoding)
}

func TestReadContentTooLarge(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "big.txt")
	writeFile(t, file, []byte("0123456789"))

	_, err := l.ReadContent(ctx, file, 5)
	assert.ErrorIs(t, err, fs.ErrTooLarge)
}

func TestWriteContent(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	file := filepath.Join(dir, "w.txt")

	require.NoError(t, l.WriteContent(ctx, file, []byte("first")))
	require.NoError(t, l.WriteContent(ctx, file, []byte("second")))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestPathSuggestions(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Projects"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Pictures"), 0o755))
	writeFile(t, filepath.Join(dir, "Plan.txt"), []byte("x"))

	got, err := l.PathSuggestions(ctx, filepath.ToSlash(dir)+"/P")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.ToSlash(dir) + "/Pictures",
		filepath.ToSlash(dir) + "/Projects",
	}, got)
}

func TestWalk(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	writeFile(t, filepath.Join(dir, "top.txt"), []byte("1"))
	writeFile(t, filepath.Join(dir, "a", "b", "deep.txt"), []byte("22"))

	// walk callbacks may run concurrently
	var mu sync.Mutex
	var files []string
	err := l.Walk(ctx, dir, func(e fs.Entry) error {
		if e.IsFile {
			mu.Lock()
			files = append(files, e.Name)
			mu.Unlock()
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"top.txt", "deep.txt"}, files)
}

func TestWalkCancelled(t *testing.T) {
	l := New(0)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f.txt"), []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Walk(ctx, dir, func(e fs.Entry) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizePath(t *testing.T) {
	l := New(0)
	assert.Equal(t, "/a/b", l.NormalizePath("//a///b/"))
	assert.Equal(t, "/", l.NormalizePath(""))
}
