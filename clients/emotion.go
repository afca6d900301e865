package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// --- Emotion (/detect) ---
type EmoReq struct {
	Text string `json:"text"`
}
type EmoResp struct {
	Emotions        []EmoScore `json:"emotions"`
	DominantEmotion string     `json:"dominant_emotion"`
}

var ErrEmptyDistribution = errors.New("emotion: empty distribution")

func (h *HTTP) Emotion(ctx context.Context, url, text string) (*EmoResp, error) {
	b, err := json.Marshal(EmoReq{Text: text})
	if err != nil {
		return nil, err
	}
	resp, err := h.do(ctx, "emotion", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/detect", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out EmoResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emotion decode: %w", err)
	}
	return &out, nil
}

// EmotionClient classifies text with the emotion detection service.
type EmotionClient struct {
	http *HTTP
	url  string
}

func NewEmotionClient(h *HTTP, url string) *EmotionClient {
	return &EmotionClient{http: h, url: strings.TrimRight(url, "/")}
}

// Classify returns the full label distribution reported by the service.
func (c *EmotionClient) Classify(ctx context.Context, text string) ([]EmoScore, error) {
	resp, err := c.http.Emotion(ctx, c.url, text)
	if err != nil {
		return nil, err
	}
	if len(resp.Emotions) == 0 {
		return nil, ErrEmptyDistribution
	}
	return resp.Emotions, nil
}
