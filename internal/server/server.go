package server

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maxBogovick/vfs-desktop-sub002/internal/config"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs/local"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/fs/virtual"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/logging"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/metrics"
	"github.com/maxBogovick/vfs-desktop-sub002/internal/search"
)

// Server wires the backends, search service and HTTP router together.
type Server struct {
	router   *gin.Engine
	backends map[string]fs.Filesystem
	searcher *search.Searcher
	metrics  *metrics.Metrics
	log      *logging.Logger
}

// New builds the server from configuration.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	m := metrics.New()

	store := virtual.NewStore(cfg.ResolveSnapshotPath())
	store.SetMetrics(m)
	vfs, err := virtual.New(store, log.Named("virtual"))
	if err != nil {
		return nil, fmt.Errorf("init virtual backend: %w", err)
	}

	s := &Server{
		backends: map[string]fs.Filesystem{
			"virtual": vfs,
			"local":   local.New(cfg.Local.MaxReadSize),
		},
		searcher: search.New(log.Named("search")),
		metrics:  m,
		log:      log,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestID())
	router.Use(httpMetrics(m))
	if cfg.RateLimit.Enabled {
		router.Use(rateLimit(cfg.RateLimit))
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/fs")
	{
		api.POST("/list", s.list)
		api.POST("/stat", s.stat)
		api.POST("/delete", s.delete)
		api.POST("/rename", s.rename)
		api.POST("/mkdir", s.mkdir)
		api.POST("/copy", s.copy)
		api.POST("/move", s.move)
		api.POST("/read", s.readContent)
		api.POST("/write", s.writeContent)
		api.POST("/normalize", s.normalize)
		api.POST("/suggest", s.suggest)
		api.POST("/open", s.openFile)
		api.POST("/reveal", s.reveal)
		api.POST("/terminal", s.terminal)
		api.GET("/home", s.home)
		api.GET("/system-folders", s.systemFolders)
	}
	router.POST("/search", s.search)

	s.router = router
	return s, nil
}

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	s.log.Info("server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Handler exposes the router, used by httptest in integration tests.
func (s *Server) Handler() *gin.Engine { return s.router }

// backend resolves the backend selector, defaulting to the virtual tree.
func (s *Server) backend(name string) (fs.Filesystem, error) {
	if name == "" {
		name = "virtual"
	}
	b, ok := s.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %q", name)
	}
	return b, nil
}
