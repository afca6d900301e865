package clients

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const cacheKeyPrefix = "moments:emotion:"

// CachedClassifier memoises another Classifier in Redis, keyed by the digest
// of the classifier input. Redis failures never fail a classification.
type CachedClassifier struct {
	next Classifier
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  logrus.FieldLogger
}

func NewCachedClassifier(next Classifier, rdb redis.UniversalClient, ttl time.Duration, log logrus.FieldLogger) *CachedClassifier {
	return &CachedClassifier{next: next, rdb: rdb, ttl: ttl, log: log}
}

// NewRedis connects and pings, failing fast on an unreachable server.
func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		MinIdleConns: 2,
	})
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) ([]EmoScore, error) {
	key := cacheKey(text)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var scores []EmoScore
		if jerr := json.Unmarshal(raw, &scores); jerr == nil && len(scores) > 0 {
			return scores, nil
		}
		c.log.WithField("key", key).Warn("discarding corrupt cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).Warn("emotion cache read failed")
	}

	scores, err := c.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}
	if b, jerr := json.Marshal(scores); jerr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.WithError(serr).Warn("emotion cache write failed")
		}
	}
	return scores, nil
}
