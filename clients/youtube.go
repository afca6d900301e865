package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// --- YouTube Data API (commentThreads.list) ---
type CommentSnippet struct {
	TextDisplay string `json:"textDisplay"`
}
type TopLevelComment struct {
	Snippet CommentSnippet `json:"snippet"`
}
type ThreadSnippet struct {
	TopLevelComment TopLevelComment `json:"topLevelComment"`
}
type CommentThread struct {
	Snippet ThreadSnippet `json:"snippet"`
}
type CommentThreadsResp struct {
	Items         []CommentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken"`
}

// maxPageSize is the API limit for commentThreads.list.
const maxPageSize = 100

var ErrMissingAPIKey = errors.New("youtube: api key is empty")

// CommentThreads fetches one relevance-ordered page of top-level comments.
func (h *HTTP) CommentThreads(ctx context.Context, baseURL, apiKey, videoID, pageToken string, pageSize int) (*CommentThreadsResp, error) {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("videoId", videoID)
	q.Set("maxResults", strconv.Itoa(pageSize))
	q.Set("textFormat", "plainText")
	q.Set("order", "relevance")
	q.Set("key", apiKey)
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	endpoint := baseURL + "/commentThreads?" + q.Encode()

	resp, err := h.do(ctx, "youtube", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out CommentThreadsResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("youtube decode: %w", err)
	}
	return &out, nil
}

// YouTubeClient is a CommentSource backed by the YouTube Data API.
type YouTubeClient struct {
	http     *HTTP
	url      string
	apiKey   string
	pageSize int
}

func NewYouTubeClient(h *HTTP, baseURL, apiKey string, pageSize int) *YouTubeClient {
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &YouTubeClient{http: h, url: strings.TrimRight(baseURL, "/"), apiKey: apiKey, pageSize: pageSize}
}

// FetchComments follows nextPageToken until max comments are collected or
// no more pages exist, and truncates the result to max.
func (c *YouTubeClient) FetchComments(ctx context.Context, videoID string, max int) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	var comments []string
	token := ""
	for len(comments) < max {
		page, err := c.http.CommentThreads(ctx, c.url, c.apiKey, videoID, token, c.pageSize)
		if err != nil {
			return nil, err
		}
		for _, it := range page.Items {
			comments = append(comments, it.Snippet.TopLevelComment.Snippet.TextDisplay)
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}
	if len(comments) > max {
		comments = comments[:max]
	}
	return comments, nil
}
