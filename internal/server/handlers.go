package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/search"
)

type pathRequest struct {
	Backend string `json:"backend"`
	Path    string `json:"path" binding:"required"`
}

type renameRequest struct {
	Backend string `json:"backend"`
	Path    string `json:"path" binding:"required"`
	NewName string `json:"newName" binding:"required"`
}

type mkdirRequest struct {
	Backend string `json:"backend"`
	Parent  string `json:"parent" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type transferRequest struct {
	Backend     string   `json:"backend"`
	Sources     []string `json:"sources" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
}

type readRequest struct {
	Backend string `json:"backend"`
	Path    string `json:"path" binding:"required"`
	MaxSize int64  `json:"maxSize"`
}

type writeRequest struct {
	Backend string `json:"backend"`
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

type searchRequest struct {
	Backend   string `json:"backend"`
	Path      string `json:"path" binding:"required"`
	Name      string `json:"name"`
	MatchMode string `json:"matchMode"`
	Distance  int    `json:"distance"`
	Extension string `json:"extension"`
	MinSize   *int64 `json:"minSize"`
	MaxSize   *int64 `json:"maxSize"`
	Recursive bool   `json:"recursive"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "vfs-backend"})
}

func (s *Server) list(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	entries, err := backend.ListDirectory(c.Request.Context(), req.Path)
	s.record(req.Backend, "list", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) stat(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	entry, err := backend.Stat(c.Request.Context(), req.Path)
	s.record(req.Backend, "stat", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) delete(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.Delete(c.Request.Context(), req.Path)
	s.record(req.Backend, "delete", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) rename(c *gin.Context) {
	var req renameRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.Rename(c.Request.Context(), req.Path, req.NewName)
	s.record(req.Backend, "rename", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) mkdir(c *gin.Context) {
	var req mkdirRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.Mkdir(c.Request.Context(), req.Parent, req.Name)
	s.record(req.Backend, "mkdir", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) copy(c *gin.Context) {
	var req transferRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.Copy(c.Request.Context(), req.Sources, req.Destination)
	s.record(req.Backend, "copy", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) move(c *gin.Context) {
	var req transferRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.Move(c.Request.Context(), req.Sources, req.Destination)
	s.record(req.Backend, "move", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) readContent(c *gin.Context) {
	var req readRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	content, err := backend.ReadContent(c.Request.Context(), req.Path, req.MaxSize)
	s.record(req.Backend, "read", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (s *Server) writeContent(c *gin.Context) {
	var req writeRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := backend.WriteContent(c.Request.Context(), req.Path, []byte(req.Content))
	s.record(req.Backend, "write", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) normalize(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": backend.NormalizePath(req.Path)})
}

func (s *Server) suggest(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	suggestions, err := backend.PathSuggestions(c.Request.Context(), req.Path)
	if err != nil {
		s.fail(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) openFile(c *gin.Context) {
	s.osIntegration(c, "open", fs.Filesystem.OpenFile)
}

func (s *Server) reveal(c *gin.Context) {
	s.osIntegration(c, "reveal", fs.Filesystem.RevealInFileManager)
}

func (s *Server) terminal(c *gin.Context) {
	s.osIntegration(c, "terminal", fs.Filesystem.OpenTerminal)
}

func (s *Server) home(c *gin.Context) {
	backend, ok := s.resolve(c, c.Query("backend"))
	if !ok {
		return
	}
	home, err := backend.HomeDirectory(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": home})
}

func (s *Server) systemFolders(c *gin.Context) {
	backend, ok := s.resolve(c, c.Query("backend"))
	if !ok {
		return
	}
	folders, err := backend.SystemFolders(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}

	query, err := buildQuery(&req)
	if err != nil {
		s.fail(c, err)
		return
	}

	start := time.Now()
	matches, err := s.searcher.Search(c.Request.Context(), backend, req.Path, query)
	s.record(req.Backend, "search", err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.RecordSearch(len(matches))
	if matches == nil {
		matches = []fs.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func buildQuery(req *searchRequest) (*search.Query, error) {
	b := search.NewBuilder().Recursive(req.Recursive)
	if req.Name != "" {
		if req.MatchMode == "fuzzy" {
			b.WithFuzzyName(req.Name, req.Distance)
		} else {
			mode, err := parseMatchMode(req.MatchMode)
			if err != nil {
				return nil, err
			}
			b.WithName(req.Name, mode)
		}
	}
	if req.Extension != "" {
		b.WithExtension(req.Extension)
	}
	switch {
	case req.MinSize != nil && req.MaxSize != nil:
		b.WithSizeRange(*req.MinSize, *req.MaxSize)
	case req.MinSize != nil:
		b.WithMinSize(*req.MinSize)
	case req.MaxSize != nil:
		b.WithMaxSize(*req.MaxSize)
	}
	return b.Build()
}

func parseMatchMode(mode string) (search.TextMatchMode, error) {
	switch mode {
	case "", "contains":
		return search.MatchContains, nil
	case "exact":
		return search.MatchExact, nil
	case "regex":
		return search.MatchRegex, nil
	case "glob":
		return search.MatchGlob, nil
	default:
		return 0, fmt.Errorf("%w: unknown match mode %q", fs.ErrInvalidPattern, mode)
	}
}

// osIntegration handles the open/reveal/terminal trio, which differ only in
// the contract method they delegate to.
func (s *Server) osIntegration(c *gin.Context, op string, fn func(fs.Filesystem, context.Context, string) error) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	backend, ok := s.resolve(c, req.Backend)
	if !ok {
		return
	}
	start := time.Now()
	err := fn(backend, c.Request.Context(), req.Path)
	s.record(req.Backend, op, err, start)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// bind parses the JSON body, replying 400 on malformed input.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// resolve looks up the requested backend, replying 400 when unknown.
func (s *Server) resolve(c *gin.Context, name string) (fs.Filesystem, bool) {
	backend, err := s.backend(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return backend, true
}

// record feeds the operation metrics.
func (s *Server) record(backend, op string, err error, start time.Time) {
	if backend == "" {
		backend = "virtual"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordFsOp(backend, op, status, time.Since(start))
}

// fail maps contract errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fs.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, fs.ErrNotADirectory),
		errors.Is(err, fs.ErrInvalidPattern),
		errors.Is(err, fs.ErrTooLarge):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Error("operation failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
