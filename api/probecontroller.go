package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/narek-arsh/aura-trends-dashboard/probe"
)

// RegisterProbeRoutes registers the background refresh trigger.
func (s *Server) RegisterProbeRoutes(r *gin.Engine) {
	g := r.Group("/api/probe")
	g.POST("/refresh", s.handleRefresh)
}

// handleRefresh kicks off a full fetch-and-curate pass in the
// background and returns 202 immediately. Only one run at a time; a
// second trigger while busy gets 409.
func (s *Server) handleRefresh(c *gin.Context) {
	s.refreshing.Lock()
	if s.busy {
		s.refreshing.Unlock()
		c.JSON(http.StatusConflict, gin.H{"status": "refresh already running"})
		return
	}
	s.busy = true
	s.refreshing.Unlock()

	go func() {
		defer func() {
			s.refreshing.Lock()
			s.busy = false
			s.refreshing.Unlock()
		}()

		summary, err := probe.RunOnce(context.Background(), s.cfg)
		if err != nil {
			log.Printf("[api] refresh failed: %v", err)
			return
		}
		log.Printf("[api] refresh done: %d evaluated, %d accepted", summary.Evaluated, summary.Accepted)

		if err := s.reload(); err != nil {
			log.Printf("[api] store reload after refresh failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}
