package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// --- Visualization (/generate-timeline) ---
type TimelinePoint struct {
	Timestamp int    `json:"timestamp"`
	Emotion   string `json:"emotion"`
	Exemplar  string `json:"exemplar,omitempty"`
}

type TimelineReq struct {
	VideoID string          `json:"video_id"`
	Points  []TimelinePoint `json:"points"`
}

type TimelineResp struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// GenerateTimeline hands an emotion timeline to the visualization service.
func (h *HTTP) GenerateTimeline(ctx context.Context, url string, req TimelineReq) (*TimelineResp, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := h.do(ctx, "viz timeline", func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/generate-timeline", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out TimelineResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("viz timeline decode: %w", err)
	}
	return &out, nil
}
