package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/narek-arsh/aura-trends-dashboard/config"
	"github.com/narek-arsh/aura-trends-dashboard/storage"
)

// Server holds the dashboard's stores and configuration. The store
// pointers are swapped wholesale after a refresh, so reads go through
// the accessor methods under the read lock.
type Server struct {
	cfg    config.Config
	mu     sync.RWMutex
	trends *storage.TrendStore
	saved  *storage.SavedStore

	refreshing sync.Mutex
	busy       bool
}

// NewServer loads both stores from disk and returns a ready server.
func NewServer(cfg config.Config) (*Server, error) {
	trends, err := storage.LoadTrends(cfg.TrendsPath())
	if err != nil {
		return nil, err
	}
	saved, err := storage.LoadSaved(cfg.SavedPath())
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, trends: trends, saved: saved}, nil
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	s.RegisterTrendRoutes(r)
	s.RegisterSavedRoutes(r)
	s.RegisterProbeRoutes(r)
	return r
}

// handleHealth reports liveness plus store sizes for quick inspection.
func (s *Server) handleHealth(c *gin.Context) {
	s.mu.RLock()
	trendCount := s.trends.Len()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"trends": trendCount,
	})
}

// reload re-reads the stores from disk, typically after a refresh run
// has rewritten them.
func (s *Server) reload() error {
	trends, err := storage.LoadTrends(s.cfg.TrendsPath())
	if err != nil {
		return err
	}
	saved, err := storage.LoadSaved(s.cfg.SavedPath())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.trends = trends
	s.saved = saved
	s.mu.Unlock()
	return nil
}
