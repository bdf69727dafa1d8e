package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// RegisterSavedRoutes registers the saved-list endpoints.
func (s *Server) RegisterSavedRoutes(r *gin.Engine) {
	g := r.Group("/api/saved")
	g.GET("", s.handleListSaved)
	g.POST("/toggle", s.handleToggleSaved)
}

// ToggleRequest carries the trend whose saved state should flip. The
// full trend travels in the payload so saving works even after the
// entry has rotated out of the main store.
type ToggleRequest struct {
	Trend types.Trend `json:"trend" binding:"required"`
}

// handleListSaved returns every saved trend.
func (s *Server) handleListSaved(c *gin.Context) {
	s.mu.RLock()
	saved := s.saved.List()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"trends": saved, "count": len(saved)})
}

// handleToggleSaved flips the saved state of a trend and persists the
// list immediately.
func (s *Server) handleToggleSaved(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Trend.Key() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trend needs an id, link or title"})
		return
	}

	s.mu.Lock()
	nowSaved, err := s.saved.Toggle(req.Trend)
	s.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": nowSaved, "key": req.Trend.Key()})
}
