package virtual

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/logging"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "state.json"))

	root := newDirectory(100)
	root.Children["home"] = newDirectory(100)
	root.Children["home"].Children["a.txt"] = newFile([]byte("hello"), 200)

	require.NoError(t, store.Save(&snapshot{Root: root, HomeDirectory: "/home"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/home", loaded.HomeDirectory)

	file := loaded.Root.Children["home"].Children["a.txt"]
	require.NotNil(t, file)
	assert.Equal(t, KindFile, file.Kind)
	assert.Equal(t, []byte("hello"), file.Content)
	assert.Equal(t, int64(200), file.Created)
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := store.Load()
	assert.Error(t, err)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStoreLoadRootNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"root":{"kind":"file"},"home_directory":"/home"}`), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestNewSelfHealsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	store := NewStore(path)
	v, err := New(store, logging.NewNop())
	require.NoError(t, err)

	home, err := v.HomeDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultHome, home)

	// the fresh skeleton was written back out
	snap, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, snap.Root.Children["home"])
}

func TestStateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	v1, err := New(NewStore(path), logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, v1.Mkdir(ctx, "/home", "projects"))
	require.NoError(t, v1.WriteContent(ctx, "/home/projects/readme.md", []byte("# hi")))

	v2, err := New(NewStore(path), logging.NewNop())
	require.NoError(t, err)
	c, err := v2.ReadContent(ctx, "/home/projects/readme.md", 0)
	require.NoError(t, err)
	assert.Equal(t, "# hi", c.Content)
}
