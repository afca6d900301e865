package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmoScore is one (label, confidence) pair produced by a classifier.
type EmoScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier maps normalized comment text to one or more scored labels.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]EmoScore, error)
}

// CommentSource returns up to max plain-text comments of a video.
type CommentSource interface {
	FetchComments(ctx context.Context, videoID string, max int) ([]string, error)
}

// HTTP is the shared transport for the remote collaborators. Requests that
// fail in transport or answer 429/5xx are retried up to attempts times.
type HTTP struct {
	c        *http.Client
	attempts int
	backoff  time.Duration
}

func NewHTTP() *HTTP { return &HTTP{c: &http.Client{Timeout: 60 * time.Second}, attempts: 1} }

// NewHTTPWithRetry builds a transport with the given client timeout and
// attempt count (values below 1 mean a single attempt).
func NewHTTPWithRetry(timeout time.Duration, attempts int, backoff time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if attempts < 1 {
		attempts = 1
	}
	return &HTTP{c: &http.Client{Timeout: timeout}, attempts: attempts, backoff: backoff}
}

// StatusError is a non-200 answer from a collaborator.
type StatusError struct {
	Service string
	Status  string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Service, e.Status, e.Body)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// do sends the request built by newReq and returns the 200 response; the
// caller closes its body. newReq is called once per attempt.
func (h *HTTP) do(ctx context.Context, service string, newReq func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < h.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(h.backoff * time.Duration(attempt)):
			}
		}

		req, err := newReq()
		if err != nil {
			return nil, err
		}
		resp, err := h.c.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		lastErr = &StatusError{Service: service, Status: resp.Status, Code: resp.StatusCode, Body: string(body)}
		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}
