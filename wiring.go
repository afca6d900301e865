package main

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/comment-moments/clients"
	cfg "github.com/maastricht-university/comment-moments/config"
)

const retryBackoff = 500 * time.Millisecond

var errNoClassifier = errors.New("no emotion classifier configured: set services.emotion.url or OPENAI_API_KEY")

func newHTTP(timeout time.Duration, attempts int) *clients.HTTP {
	return clients.NewHTTPWithRetry(timeout, attempts, retryBackoff)
}

// newClassifier prefers the emotion service, falls back to OpenAI, and puts
// the Redis cache in front when services.redis.addr is set. An unreachable
// Redis is logged and skipped.
func newClassifier(ctx context.Context, c *cfg.Root, log logrus.FieldLogger) (clients.Classifier, func(), error) {
	var clf clients.Classifier
	svc := c.Services
	switch {
	case svc.Emotion.URL != "":
		clf = clients.NewEmotionClient(newHTTP(svc.Emotion.Timeout, svc.Emotion.Retries), svc.Emotion.URL)
		log.WithField("url", svc.Emotion.URL).Debug("using emotion service")
	case svc.OpenAI.APIKey != "":
		clf = clients.NewOpenAIClassifier(svc.OpenAI.APIKey, svc.OpenAI.Model, svc.OpenAI.BaseURL, svc.Emotion.Retries)
		log.WithField("model", svc.OpenAI.Model).Debug("using openai classifier")
	default:
		return nil, nil, errNoClassifier
	}

	if svc.Redis.Addr == "" {
		return clf, func() {}, nil
	}
	rdb, err := clients.NewRedis(ctx, svc.Redis.Addr, svc.Redis.Password, svc.Redis.DB)
	if err != nil {
		log.WithError(err).Warn("classifier cache disabled")
		return clf, func() {}, nil
	}
	return clients.NewCachedClassifier(clf, rdb, svc.Redis.TTL, log), func() { rdb.Close() }, nil
}

func newCommentSource(c *cfg.Root) *clients.YouTubeClient {
	yt := c.Services.YouTube
	return clients.NewYouTubeClient(newHTTP(yt.Timeout, yt.Retries), yt.URL, yt.APIKey, yt.PageSize)
}
