package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maastricht-university/comment-moments/orchestrator"
)

func (s *Server) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// handlePing handles GET /ping
func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAnalyze handles GET /analyze?video_id=...&max_results=N
func (s *Server) handleAnalyze(c *gin.Context) {
	videoID := c.Query("video_id")
	if videoID == "" {
		s.respondError(c, http.StatusBadRequest, "video_id is required")
		return
	}

	maxResults := 0
	if raw := c.Query("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(c, http.StatusBadRequest, "max_results must be a positive integer")
			return
		}
		maxResults = n
	}

	ctx := c.Request.Context()
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	moments, err := s.analyzer.Run(ctx, videoID, maxResults)
	if err != nil {
		_ = c.Error(err)
		s.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if moments == nil {
		moments = []orchestrator.Moment{}
	}

	c.JSON(http.StatusOK, AnalyzeResponse{VideoID: videoID, Emotions: moments, Count: len(moments)})
}
