package virtual

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/metrics"
)

// snapshot is the on-disk document: the whole tree plus the home path.
type snapshot struct {
	Root          *Node  `json:"root"`
	HomeDirectory string `json:"home_directory"`
}

// Store persists snapshots to a single file. Writes are serialized by the
// store's own lock, independent of the tree lock, so the bytes on disk
// always reflect the most recent state handed to Save.
type Store struct {
	path    string
	mu      sync.Mutex
	metrics *metrics.Metrics
}

// NewStore creates a store bound to the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// SetMetrics attaches optional snapshot write collectors.
func (s *Store) SetMetrics(m *metrics.Metrics) { s.metrics = m }

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Load reads and parses the snapshot. Returns os.ErrNotExist (wrapped) when
// the file is missing; a parse failure is reported as an error so the
// caller can self-heal with a fresh skeleton.
func (s *Store) Load() (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Root == nil || !snap.Root.isDir() {
		return nil, fmt.Errorf("parse snapshot: root is not a directory")
	}
	snap.Root.normalize()
	return &snap, nil
}

// Save serializes the snapshot pretty-printed and atomically replaces the
// snapshot file (temp file + rename), so a crash mid-write never leaves a
// truncated document behind.
func (s *Store) Save(snap *snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := sonic.ConfigDefault.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vfs-snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SnapshotWrites.Inc()
		s.metrics.SnapshotBytes.Set(float64(len(data)))
	}
	return nil
}
