package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

// Walk enumerates the subtree under root using a parallel directory walk.
// The search service uses this as the recursive fast path on the OS
// backend. Symlinks are not followed.
func (l *FS) Walk(ctx context.Context, root string, fn fs.WalkFunc) error {
	root = l.NormalizePath(root)
	conf := fastwalk.Config{Follow: false}

	return fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		p = filepath.ToSlash(p)
		if p == root {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		return fn(entryFromInfo(p, info))
	})
}
