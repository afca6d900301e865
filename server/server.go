package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	cfg "github.com/maastricht-university/comment-moments/config"
	"github.com/maastricht-university/comment-moments/orchestrator"
)

// Analyzer is the part of the pipeline the HTTP layer needs.
type Analyzer interface {
	Run(ctx context.Context, videoID string, maxResults int) ([]orchestrator.Moment, error)
}

// Server exposes the pipeline over HTTP.
type Server struct {
	analyzer Analyzer
	config   cfg.Server
	version  string
	log      logrus.FieldLogger
	router   *gin.Engine
}

func NewServer(a Analyzer, c cfg.Server, version string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{analyzer: a, config: c, version: version, log: log}
	s.router = s.setupRoutes()
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves on the configured address until ctx is done, then drains
// in-flight requests for up to five seconds.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.config.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
