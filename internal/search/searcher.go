package search

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/logging"
)

// Searcher drives a filesystem backend through a traversal, applying a
// query's specification to every file entry.
type Searcher struct {
	log *logging.Logger
}

// New creates a search service.
func New(log *logging.Logger) *Searcher {
	return &Searcher{log: log}
}

// Search lists the start directory and tests each file entry against the
// query's specification; directory entries are descended into when the
// query is recursive. The two checks are independent branches: files are
// tested, directories are recursed, never one nested in the other.
//
// Backends exposing the Walker capability serve recursive queries in a
// single walk instead of repeated directory listings.
func (s *Searcher) Search(ctx context.Context, backend fs.Filesystem, start string, q *Query) ([]fs.Entry, error) {
	start = backend.NormalizePath(start)

	var matches []fs.Entry
	var err error
	if walker, ok := backend.(fs.Walker); ok && q.Recursive {
		matches, err = s.searchWalk(ctx, walker, start, q)
	} else {
		matches, err = s.searchList(ctx, backend, start, q)
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("search finished",
		zap.String("start", start),
		zap.Bool("recursive", q.Recursive),
		zap.Int("matches", len(matches)))
	return matches, nil
}

func (s *Searcher) searchWalk(ctx context.Context, walker fs.Walker, start string, q *Query) ([]fs.Entry, error) {
	// Walker implementations may invoke the callback from multiple
	// goroutines, so collection is locked.
	var mu sync.Mutex
	var matches []fs.Entry
	err := walker.Walk(ctx, start, func(e fs.Entry) error {
		if e.IsFile && q.Spec.Matches(e) {
			mu.Lock()
			matches = append(matches, e)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Searcher) searchList(ctx context.Context, backend fs.Filesystem, dir string, q *Query) ([]fs.Entry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := backend.ListDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	var matches []fs.Entry
	for _, e := range entries {
		if e.IsFile && q.Spec.Matches(e) {
			matches = append(matches, e)
		}
		if e.IsDir && q.Recursive {
			sub, err := s.searchList(ctx, backend, e.Path, q)
			if err != nil {
				return nil, err
			}
			matches = append(matches, sub...)
		}
	}
	return matches, nil
}
