package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RegisterTrendRoutes registers the curated-trend read endpoints.
func (s *Server) RegisterTrendRoutes(r *gin.Engine) {
	g := r.Group("/api/trends")
	g.GET("", s.handleListTrends)
	g.GET("/categories", s.handleListCategories)
}

// handleListTrends returns curated trends, newest first.
// Query params: category (string, optional), limit (int, optional).
// The special category "guardadas" serves the saved list instead.
func (s *Server) handleListTrends(c *gin.Context) {
	category := c.Query("category")
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if category == "guardadas" {
		saved := s.saved.List()
		if limit > 0 && len(saved) > limit {
			saved = saved[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"trends": saved, "count": len(saved)})
		return
	}

	if category == "todas" {
		category = ""
	}
	trends := s.trends.List(category, limit)
	c.JSON(http.StatusOK, gin.H{"trends": trends, "count": len(trends)})
}

// handleListCategories returns the categories present in the store, in
// first-seen order, so the dashboard can build its filter tabs.
func (s *Server) handleListCategories(c *gin.Context) {
	s.mu.RLock()
	categories := s.trends.Categories()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
