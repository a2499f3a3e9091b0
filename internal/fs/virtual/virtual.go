package virtual

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/logging"
)

// DefaultHome is the home directory of a freshly seeded tree.
const DefaultHome = "/home"

// defaultFolders are created under home when no snapshot exists.
var defaultFolders = []string{"Documents", "Downloads", "Pictures", "Desktop"}

// FS is the virtual filesystem backend. One coarse reader-writer lock
// guards the whole tree: reads clone the matched subtree under the shared
// lock, mutations hold the exclusive lock for the walk-and-mutate step and
// persist the full state afterwards.
type FS struct {
	mu    sync.RWMutex
	root  *Node
	home  string
	store *Store
	log   *logging.Logger
}

var _ fs.Filesystem = (*FS)(nil)

// New builds the backend from the snapshot file. A missing or corrupt
// snapshot self-heals: a default skeleton is synthesized and persisted
// immediately.
func New(store *Store, log *logging.Logger) (*FS, error) {
	v := &FS{store: store, log: log}

	snap, err := store.Load()
	if err == nil {
		v.root = snap.Root
		v.home = snap.HomeDirectory
		if v.home == "" {
			v.home = DefaultHome
		}
		log.Info("virtual filesystem loaded",
			zap.String("snapshot", store.Path()),
			zap.String("home", v.home))
		return v, nil
	}

	log.Warn("snapshot unavailable, seeding default tree",
		zap.String("snapshot", store.Path()),
		zap.Error(err))

	now := time.Now().Unix()
	home := newDirectory(now)
	for _, name := range defaultFolders {
		home.Children[name] = newDirectory(now)
	}
	root := newDirectory(now)
	root.Children["home"] = home

	v.root = root
	v.home = DefaultHome
	if err := v.persist(); err != nil {
		return nil, fmt.Errorf("seed snapshot: %w", err)
	}
	return v, nil
}

// persist writes the entire current state through to the snapshot file.
// The tree lock is held only long enough to clone the state; the store
// serializes under its own lock, so the bytes on disk always reflect the
// latest in-memory tree at flush time, whichever writer triggered it.
func (v *FS) persist() error {
	v.mu.RLock()
	snap := snapshot{Root: v.root.clone(), HomeDirectory: v.home}
	v.mu.RUnlock()

	if err := v.store.Save(&snap); err != nil {
		v.log.Error("snapshot write failed", zap.Error(err))
		return err
	}
	return nil
}

// NormalizePath expands a leading ~ to the home directory, drops empty
// segments and rejoins with a single leading slash. Idempotent; the empty
// path normalizes to "/".
func (v *FS) NormalizePath(p string) string {
	if p == "~" {
		p = v.home
	} else if strings.HasPrefix(p, "~/") {
		p = v.home + p[1:]
	}
	segments := splitPath(p)
	return "/" + strings.Join(segments, "/")
}

func splitPath(p string) []string {
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// findNode walks the tree by segments. Caller must hold the lock.
func (v *FS) findNode(p string) (*Node, error) {
	cur := v.root
	for i, seg := range splitPath(p) {
		if !cur.isDir() {
			return nil, fs.NotADirectory("/" + strings.Join(splitPath(p)[:i], "/"))
		}
		child, ok := cur.Children[seg]
		if !ok {
			return nil, fs.NotFound(p)
		}
		cur = child
	}
	return cur, nil
}

// findDir resolves a path that must be a directory. Caller holds the lock.
func (v *FS) findDir(p string) (*Node, error) {
	node, err := v.findNode(p)
	if err != nil {
		return nil, err
	}
	if !node.isDir() {
		return nil, fs.NotADirectory(p)
	}
	return node, nil
}

// withNodeMut takes the exclusive lock for the full walk-and-mutate step,
// releases it, then persists the entire current state.
func (v *FS) withNodeMut(p string, mutate func(node *Node) error) error {
	v.mu.Lock()
	node, err := v.findNode(p)
	if err == nil {
		err = mutate(node)
	}
	v.mu.Unlock()
	if err != nil {
		return err
	}
	return v.persist()
}

// ListDirectory returns the entries of a directory, directories first then
// case-insensitive by name.
func (v *FS) ListDirectory(ctx context.Context, p string) ([]fs.Entry, error) {
	p = v.NormalizePath(p)

	v.mu.RLock()
	dir, err := v.findDir(p)
	if err != nil {
		v.mu.RUnlock()
		return nil, err
	}
	dir = dir.clone()
	v.mu.RUnlock()

	entries := make([]fs.Entry, 0, len(dir.Children))
	for name, child := range dir.Children {
		entries = append(entries, child.entry(fs.JoinPath(p, name)))
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Stat returns the entry record for a single path.
func (v *FS) Stat(ctx context.Context, p string) (*fs.Entry, error) {
	p = v.NormalizePath(p)

	v.mu.RLock()
	node, err := v.findNode(p)
	if err != nil {
		v.mu.RUnlock()
		return nil, err
	}
	node = node.clone()
	v.mu.RUnlock()

	e := node.entry(p)
	return &e, nil
}

// Delete removes the entry from its parent's children mapping.
func (v *FS) Delete(ctx context.Context, p string) error {
	p = v.NormalizePath(p)
	parent, name := path.Split(p)
	if name == "" {
		return fmt.Errorf("cannot delete root")
	}

	err := v.withNodeMut(parent, func(node *Node) error {
		if !node.isDir() {
			return fs.NotADirectory(parent)
		}
		if _, ok := node.Children[name]; !ok {
			return fs.NotFound(p)
		}
		delete(node.Children, name)
		node.Modified = time.Now().Unix()
		return nil
	})
	if err != nil {
		return err
	}
	v.log.Debug("deleted", zap.String("path", p))
	return nil
}

// Rename changes the entry's key in its parent mapping. Never overwrites.
func (v *FS) Rename(ctx context.Context, p, newName string) error {
	p = v.NormalizePath(p)
	parent, name := path.Split(p)
	if name == "" {
		return fmt.Errorf("cannot rename root")
	}
	if newName == "" || strings.Contains(newName, "/") {
		return fmt.Errorf("invalid name: %q", newName)
	}

	err := v.withNodeMut(parent, func(node *Node) error {
		if !node.isDir() {
			return fs.NotADirectory(parent)
		}
		child, ok := node.Children[name]
		if !ok {
			return fs.NotFound(p)
		}
		if _, taken := node.Children[newName]; taken {
			return fs.AlreadyExists(newName)
		}
		delete(node.Children, name)
		node.Children[newName] = child
		now := time.Now().Unix()
		child.Modified = now
		node.Modified = now
		return nil
	})
	if err != nil {
		return err
	}
	v.log.Debug("renamed", zap.String("path", p), zap.String("to", newName))
	return nil
}

// Mkdir inserts an empty directory under parent.
func (v *FS) Mkdir(ctx context.Context, parent, name string) error {
	parent = v.NormalizePath(parent)
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid name: %q", name)
	}

	err := v.withNodeMut(parent, func(node *Node) error {
		if !node.isDir() {
			return fs.NotADirectory(parent)
		}
		if _, taken := node.Children[name]; taken {
			return fs.AlreadyExists(name)
		}
		now := time.Now().Unix()
		node.Children[name] = newDirectory(now)
		node.Modified = now
		return nil
	})
	if err != nil {
		return err
	}
	v.log.Debug("mkdir", zap.String("parent", parent), zap.String("name", name))
	return nil
}

// Copy deep-clones each source subtree and inserts the clone under its
// original name into the destination directory's children.
func (v *FS) Copy(ctx context.Context, sources []string, destination string) error {
	destination = v.NormalizePath(destination)

	v.mu.Lock()
	err := v.copyLocked(sources, destination)
	v.mu.Unlock()
	if err != nil {
		return err
	}
	return v.persist()
}

func (v *FS) copyLocked(sources []string, destination string) error {
	dst, err := v.findDir(destination)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, src := range sources {
		src = v.NormalizePath(src)
		node, err := v.findNode(src)
		if err != nil {
			return err
		}
		dst.Children[path.Base(src)] = node.clone()
	}
	dst.Modified = now
	return nil
}

// Move is copy followed by deleting each source. The two phases persist
// independently: a failure between them leaves both the original and the
// copy present. Callers that need atomicity must provide it themselves.
func (v *FS) Move(ctx context.Context, sources []string, destination string) error {
	if err := v.Copy(ctx, sources, destination); err != nil {
		return err
	}
	for _, src := range sources {
		if err := v.Delete(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

// HomeDirectory returns the configured home path.
func (v *FS) HomeDirectory(ctx context.Context) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.home, nil
}

// SystemFolders returns the home directory and its standard folders.
func (v *FS) SystemFolders(ctx context.Context) ([]fs.Entry, error) {
	home, err := v.HomeDirectory(ctx)
	if err != nil {
		return nil, err
	}
	homeEntry, err := v.Stat(ctx, home)
	if err != nil {
		return nil, err
	}
	folders := []fs.Entry{*homeEntry}
	for _, name := range defaultFolders {
		e, err := v.Stat(ctx, fs.JoinPath(home, name))
		if err != nil {
			continue
		}
		folders = append(folders, *e)
	}
	return folders, nil
}

// ReadContent renders file bytes as text when valid UTF-8, base64
// otherwise. The virtual backend enforces no size ceiling; content is
// never refused.
func (v *FS) ReadContent(ctx context.Context, p string, maxSize int64) (*fs.Content, error) {
	p = v.NormalizePath(p)

	v.mu.RLock()
	node, err := v.findNode(p)
	if err != nil {
		v.mu.RUnlock()
		return nil, err
	}
	if node.isDir() {
		v.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s is a directory", fs.ErrNotFound, p)
	}
	data := make([]byte, len(node.Content))
	copy(data, node.Content)
	v.mu.RUnlock()

	c := &fs.Content{Path: p, Size: int64(len(data))}
	if utf8.Valid(data) {
		c.Content = string(data)
		c.Encoding = fs.EncodingText
	} else {
		c.Content = base64.StdEncoding.EncodeToString(data)
		c.Encoding = fs.EncodingBase64
	}
	return c, nil
}

// WriteContent replaces a file's bytes, creating the file when absent.
func (v *FS) WriteContent(ctx context.Context, p string, data []byte) error {
	p = v.NormalizePath(p)
	parent, name := path.Split(p)
	if name == "" {
		return fmt.Errorf("invalid file path: %q", p)
	}

	return v.withNodeMut(parent, func(node *Node) error {
		if !node.isDir() {
			return fs.NotADirectory(parent)
		}
		now := time.Now().Unix()
		if existing, ok := node.Children[name]; ok {
			if existing.isDir() {
				return fs.NotADirectory(p)
			}
			existing.Content = append([]byte(nil), data...)
			existing.Modified = now
		} else {
			node.Children[name] = newFile(append([]byte(nil), data...), now)
		}
		node.Modified = now
		return nil
	})
}

// PathSuggestions completes the last segment against directory names only:
// case-insensitive prefix match, alphabetical, capped at fs.MaxSuggestions.
func (v *FS) PathSuggestions(ctx context.Context, partial string) ([]string, error) {
	parent, prefix := fs.SplitSuggestion(partial, v.NormalizePath)

	entries, err := v.ListDirectory(ctx, parent)
	if err != nil {
		return nil, err
	}
	return fs.MatchSuggestions(parent, prefix, entries), nil
}

// OpenFile is meaningless inside the virtual tree.
func (v *FS) OpenFile(ctx context.Context, p string) error { return nil }

// RevealInFileManager is meaningless inside the virtual tree.
func (v *FS) RevealInFileManager(ctx context.Context, p string) error { return nil }

// OpenTerminal is meaningless inside the virtual tree.
func (v *FS) OpenTerminal(ctx context.Context, p string) error { return nil }
