package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/maastricht-university/comment-moments/config"
	"github.com/maastricht-university/comment-moments/orchestrator"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeAnalyzer struct {
	moments []orchestrator.Moment
	err     error

	gotVideo string
	gotMax   int
	deadline bool
}

func (f *fakeAnalyzer) Run(ctx context.Context, videoID string, maxResults int) ([]orchestrator.Moment, error) {
	f.gotVideo, f.gotMax = videoID, maxResults
	_, f.deadline = ctx.Deadline()
	return f.moments, f.err
}

func newTestServer(a Analyzer, origins ...string) *Server {
	log, _ := test.NewNullLogger()
	c := cfg.Default().Server
	if len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	return NewServer(a, c, "test", log)
}

func do(s *Server, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := do(newTestServer(&fakeAnalyzer{}), http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(&fakeAnalyzer{}), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "test", got.Version)
}

func TestAnalyze(t *testing.T) {
	a := &fakeAnalyzer{moments: []orchestrator.Moment{{Timestamp: 85, Emotion: "joy", Exemplar: "1:23 so funny"}}}
	rec := do(newTestServer(a), http.MethodGet, "/analyze?video_id=abc&max_results=50", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{
		"video_id": "abc",
		"emotions": [{"timestamp": 85, "emotion": "joy", "exemplar": "1:23 so funny"}],
		"count": 1
	}`, rec.Body.String())
	assert.Equal(t, "abc", a.gotVideo)
	assert.Equal(t, 50, a.gotMax)
	assert.True(t, a.deadline)
}

func TestAnalyzeEmptyResultIsArray(t *testing.T) {
	rec := do(newTestServer(&fakeAnalyzer{}), http.MethodGet, "/analyze?video_id=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"video_id":"abc","emotions":[],"count":0}`, rec.Body.String())
}

func TestAnalyzeBadRequests(t *testing.T) {
	for name, target := range map[string]string{
		"missing video": "/analyze",
		"empty video":   "/analyze?video_id=",
		"bad max":       "/analyze?video_id=abc&max_results=lots",
		"non-positive":  "/analyze?video_id=abc&max_results=0",
	} {
		t.Run(name, func(t *testing.T) {
			a := &fakeAnalyzer{}
			rec := do(newTestServer(a), http.MethodGet, target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var got ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, http.StatusBadRequest, got.Code)
			assert.Empty(t, a.gotVideo)
		})
	}
}

func TestAnalyzePipelineError(t *testing.T) {
	a := &fakeAnalyzer{err: &orchestrator.RetrievalError{VideoID: "abc", Err: errors.New("quota exceeded")}}
	rec := do(newTestServer(a), http.MethodGet, "/analyze?video_id=abc", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Message, "quota exceeded")
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{})
	rec := do(s, http.MethodOptions, "/analyze", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")

	s = newTestServer(&fakeAnalyzer{}, "http://app.example")
	rec = do(s, http.MethodGet, "/ping", map[string]string{"Origin": "http://app.example"})
	assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(s, http.MethodGet, "/ping", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(&fakeAnalyzer{})
	rec := do(s, http.MethodGet, "/ping", nil)
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	rec = do(s, http.MethodGet, "/ping", map[string]string{requestIDHeader: "req-1"})
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
}

func TestStartStopsOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	c := cfg.Default().Server
	c.Addr = "127.0.0.1:0"
	s := NewServer(&fakeAnalyzer{}, c, "test", log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
