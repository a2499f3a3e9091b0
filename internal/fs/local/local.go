// Package local implements the filesystem contract on top of host OS
// calls. It is stateless: the OS itself serializes conflicting access, so
// the backend needs no internal coordination.
package local

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
)

// DefaultMaxReadSize caps ReadContent when the caller passes no limit.
const DefaultMaxReadSize = 10 << 20 // 10 MiB

// FS delegates every operation to the operating system.
type FS struct {
	maxReadSize int64
}

var (
	_ fs.Filesystem = (*FS)(nil)
	_ fs.Walker     = (*FS)(nil)
)

// New creates the OS-backed backend. maxReadSize <= 0 selects the default
// read ceiling.
func New(maxReadSize int64) *FS {
	if maxReadSize <= 0 {
		maxReadSize = DefaultMaxReadSize
	}
	return &FS{maxReadSize: maxReadSize}
}

// NormalizePath expands a leading ~, collapses empty segments and returns
// a /-separated absolute path.
func (l *FS) NormalizePath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.ToSlash(home) + p[1:]
		}
	}
	var segments []string
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// ListDirectory returns the directory's entries, directories first then
// case-insensitive by name.
func (l *FS) ListDirectory(ctx context.Context, p string) ([]fs.Entry, error) {
	p = l.NormalizePath(p)

	fi, err := os.Stat(p)
	if err != nil {
		return nil, mapErr(err, p)
	}
	if !fi.IsDir() {
		return nil, fs.NotADirectory(p)
	}

	des, err := os.ReadDir(p)
	if err != nil {
		return nil, mapErr(err, p)
	}

	entries := make([]fs.Entry, 0, len(des))
	for _, de := range des {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, entryFromInfo(fs.JoinPath(p, de.Name()), info))
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
func (l *FS) Stat(ctx context.Context, p string) (*fs.Entry, error) {
	p = l.NormalizePath(p)
	fi, err := os.Stat(p)
	if err != nil {
		return nil, mapErr(err, p)
	}
	e := entryFromInfo(p, fi)
	return &e, nil
}

// Delete removes a file or directory subtree.
func (l *FS) Delete(ctx context.Context, p string) error {
	p = l.NormalizePath(p)
	if _, err := os.Stat(p); err != nil {
		return mapErr(err, p)
	}
	return os.RemoveAll(p)
}

// Rename changes the last path segment, refusing to overwrite a sibling.
func (l *FS) Rename(ctx context.Context, p, newName string) error {
	p = l.NormalizePath(p)
	if newName == "" || strings.ContainsAny(newName, "/") {
		return fmt.Errorf("invalid name: %q", newName)
	}
	target := fs.JoinPath(filepath.ToSlash(filepath.Dir(p)), newName)
	if _, err := os.Stat(target); err == nil {
		return fs.AlreadyExists(newName)
	}
	if err := os.Rename(p, target); err != nil {
		return mapErr(err, p)
	}
	return nil
}

// Mkdir creates a single directory under parent.
func (l *FS) Mkdir(ctx context.Context, parent, name string) error {
	parent = l.NormalizePath(parent)
	if name == "" || strings.ContainsAny(name, "/") {
		return fmt.Errorf("invalid name: %q", name)
	}
	if err := os.Mkdir(fs.JoinPath(parent, name), 0o755); err != nil {
		if os.IsExist(err) {
			return fs.AlreadyExists(name)
		}
		return mapErr(err, parent)
	}
	return nil
}

// Copy recursively duplicates each source into the destination directory
// under its original name.
func (l *FS) Copy(ctx context.Context, sources []string, destination string) error {
	destination = l.NormalizePath(destination)
	fi, err := os.Stat(destination)
	if err != nil {
		return mapErr(err, destination)
	}
	if !fi.IsDir() {
		return fs.NotADirectory(destination)
	}
	for _, src := range sources {
		src = l.NormalizePath(src)
		if err := copyTree(ctx, src, fs.JoinPath(destination, filepath.Base(src))); err != nil {
			return err
		}
	}
	return nil
}

// Move renames each source into the destination, falling back to
// copy-then-delete when rename fails (cross-device moves).
func (l *FS) Move(ctx context.Context, sources []string, destination string) error {
	destination = l.NormalizePath(destination)
	for _, src := range sources {
		src = l.NormalizePath(src)
		target := fs.JoinPath(destination, filepath.Base(src))
		if err := os.Rename(src, target); err == nil {
			continue
		}
		if err := copyTree(ctx, src, target); err != nil {
			return err
		}
		if err := os.RemoveAll(src); err != nil {
			return mapErr(err, src)
		}
	}
	return nil
}

// HomeDirectory returns the OS user home.
func (l *FS) HomeDirectory(ctx context.Context) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.ToSlash(home), nil
}

// SystemFolders returns entries for home and the standard user folders
// that exist on this host.
func (l *FS) SystemFolders(ctx context.Context) ([]fs.Entry, error) {
	home, err := l.HomeDirectory(ctx)
	if err != nil {
		return nil, err
	}
	homeEntry, err := l.Stat(ctx, home)
	if err != nil {
		return nil, err
	}
	folders := []fs.Entry{*homeEntry}
	for _, name := range []string{"Documents", "Downloads", "Pictures", "Desktop"} {
		e, err := l.Stat(ctx, fs.JoinPath(home, name))
		if err != nil {
			continue
		}
		folders = append(folders, *e)
	}
	return folders, nil
}

// ReadContent reads a file up to the size ceiling, returning text when the
// bytes are valid UTF-8 and base64 otherwise. The detected MIME type is
// attached for the UI.
func (l *FS) ReadContent(ctx context.Context, p string, maxSize int64) (*fs.Content, error) {
	p = l.NormalizePath(p)
	if maxSize <= 0 {
		maxSize = l.maxReadSize
	}

	fi, err := os.Stat(p)
	if err != nil {
		return nil, mapErr(err, p)
	}
	if fi.IsDir() {
		return nil, fs.NotADirectory(p)
	}
	if fi.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s (%d > %d bytes)", fs.ErrTooLarge, p, fi.Size(), maxSize)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, mapErr(err, p)
	}

	c := &fs.Content{Path: p, Size: int64(len(data))}
	if mt := mimetype.Detect(data); mt != nil {
		c.MimeType = mt.String()
	}
	if utf8.Valid(data) {
		c.Content = string(data)
		c.Encoding = fs.EncodingText
	} else {
		c.Content = base64.StdEncoding.EncodeToString(data)
		c.Encoding = fs.EncodingBase64
	}
	return c, nil
}

// WriteContent replaces the file's bytes, creating it when absent.
func (l *FS) WriteContent(ctx context.Context, p string, data []byte) error {
	p = l.NormalizePath(p)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return mapErr(err, p)
	}
	return nil
}

// PathSuggestions completes the last segment against directory names only.
func (l *FS) PathSuggestions(ctx context.Context, partial string) ([]string, error) {
	parent, prefix := fs.SplitSuggestion(partial, l.NormalizePath)

	entries, err := l.ListDirectory(ctx, parent)
	if err != nil {
		return nil, err
	}
	return fs.MatchSuggestions(parent, prefix, entries), nil
}

func copyTree(ctx context.Context, src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return mapErr(err, src)
	}
	if !fi.IsDir() {
		return copyFile(src, dst, fi)
	}
	if err := os.MkdirAll(dst, fi.Mode().Perm()); err != nil {
		return mapErr(err, dst)
	}
	des, err := os.ReadDir(src)
	if err != nil {
		return mapErr(err, src)
	}
	for _, de := range des {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := copyTree(ctx, fs.JoinPath(src, de.Name()), fs.JoinPath(dst, de.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string, fi os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return mapErr(err, src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return mapErr(err, dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func entryFromInfo(p string, fi os.FileInfo) fs.Entry {
	e := fs.Entry{
		Path:     p,
		Name:     filepath.Base(p),
		IsDir:    fi.IsDir(),
		IsFile:   !fi.IsDir(),
		Modified: fs.Int64Ptr(fi.ModTime().Unix()),
	}
	if !fi.IsDir() {
		e.Size = fs.Int64Ptr(fi.Size())
	}
	created, accessed := statTimes(fi)
	e.Created = created
	e.Accessed = accessed
	return e
}

func mapErr(err error, p string) error {
	switch {
	case os.IsNotExist(err):
		return fs.NotFound(p)
	case os.IsExist(err):
		return fs.AlreadyExists(p)
	default:
		return err
	}
}
