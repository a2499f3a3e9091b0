package fs

import "context"

// MaxSuggestions caps PathSuggestions results for UI consistency.
const MaxSuggestions = 10

// Filesystem is the uniform operation contract implemented by every backend.
//
// Paths are absolute, /-separated. Operations are synchronous: each call
// either runs to completion or fails with an explicit error; no backend
// retries on its own.
type Filesystem interface {
	// ListDirectory returns the entries of a directory. Fails with
	// ErrNotFound if the path is absent and ErrNotADirectory if it
	// resolves to a file.
	ListDirectory(ctx context.Context, path string) ([]Entry, error)

	// Stat returns the entry for a single path.
	Stat(ctx context.Context, path string) (*Entry, error)

	// Delete removes a file or directory subtree.
	Delete(ctx context.Context, path string) error

	// Rename changes the last path segment. Never overwrites: fails with
	// ErrAlreadyExists when a sibling already carries newName.
	Rename(ctx context.Context, path, newName string) error

	// Mkdir creates a directory under parent. Fails with ErrAlreadyExists
	// when a sibling of that name is present.
	Mkdir(ctx context.Context, parent, name string) error

	// Copy deep-duplicates each source into the destination directory,
	// keeping the original names.
	Copy(ctx context.Context, sources []string, destination string) error

	// Move transfers each source into the destination directory.
	Move(ctx context.Context, sources []string, destination string) error

	// HomeDirectory returns the backend's home path.
	HomeDirectory(ctx context.Context) (string, error)

	// SystemFolders returns entries for the well-known user folders.
	SystemFolders(ctx context.Context) ([]Entry, error)

	// ReadContent returns file bytes as text when valid UTF-8, otherwise
	// base64. maxSize <= 0 means the backend default ceiling (the virtual
	// backend enforces none).
	ReadContent(ctx context.Context, path string, maxSize int64) (*Content, error)

	// WriteContent replaces the file's bytes, creating it when absent.
	WriteContent(ctx context.Context, path string, data []byte) error

	// NormalizePath expands a leading ~, collapses empty segments and
	// returns a canonical absolute path. Pure; never fails.
	NormalizePath(path string) string

	// PathSuggestions completes the last segment of a partial path against
	// directory names only: case-insensitive prefix match, alphabetical,
	// at most MaxSuggestions results.
	PathSuggestions(ctx context.Context, partial string) ([]string, error)

	// OS integration points. No-ops where meaningless.
	OpenFile(ctx context.Context, path string) error
	RevealInFileManager(ctx context.Context, path string) error
	OpenTerminal(ctx context.Context, path string) error
}

// WalkFunc receives one entry per visited file or directory.
// Returning an error stops the walk.
type WalkFunc func(entry Entry) error

// Walker is an optional capability: backends that can enumerate a subtree
// faster than repeated ListDirectory calls expose it and the search service
// uses it as a recursive fast path.
type Walker interface {
	Walk(ctx context.Context, root string, fn WalkFunc) error
}
