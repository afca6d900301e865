package orchestrator

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/maastricht-university/comment-moments/config"
)

func TestBucketKeyNearest(t *testing.T) {
	for _, mode := range []string{cfg.RoundHalfEven, cfg.RoundHalfUp} {
		t.Run(mode, func(t *testing.T) {
			for _, ts := range []int{748, 749, 750, 751, 752} {
				assert.Equal(t, 750, BucketKey(ts, 5, mode), ts)
			}
			for _, ts := range []int{753, 754, 755} {
				assert.Equal(t, 755, BucketKey(ts, 5, mode), ts)
			}
			assert.Equal(t, 85, BucketKey(83, 5, mode))
			assert.Equal(t, 0, BucketKey(2, 5, mode))
		})
	}
}

func TestBucketKeyFloorGroupsWholeWindow(t *testing.T) {
	for _, ts := range []int{750, 751, 752, 753, 754} {
		assert.Equal(t, 750, BucketKey(ts, 5, cfg.RoundFloor), ts)
	}
	assert.Equal(t, 755, BucketKey(755, 5, cfg.RoundFloor))
}

func TestBucketKeyHalfBoundary(t *testing.T) {
	// with an even granularity t/G can land exactly on .5
	assert.Equal(t, 4, BucketKey(3, 2, cfg.RoundHalfEven)) // 1.5 -> 2
	assert.Equal(t, 4, BucketKey(5, 2, cfg.RoundHalfEven)) // 2.5 -> 2
	assert.Equal(t, 4, BucketKey(3, 2, cfg.RoundHalfUp))
	assert.Equal(t, 6, BucketKey(5, 2, cfg.RoundHalfUp))
	assert.Equal(t, 4, BucketKey(5, 2, cfg.RoundFloor))
}

func TestGroupPartitionsRecords(t *testing.T) {
	var records []Record
	for _, ts := range []int{0, 3, 80, 83, 85, 86, 751, 752, 753, 754, 3723} {
		records = append(records, Record{Text: "c", Emotion: EmotionScore{Label: "joy", Score: 0.9}, Timestamp: ts})
	}

	b := Group(records, 5, cfg.RoundHalfEven)

	var seen []int
	for k, recs := range b {
		require.NotEmpty(t, recs, "empty bucket %d", k)
		assert.Zero(t, k%5)
		for _, r := range recs {
			assert.Equal(t, k, BucketKey(r.Timestamp, 5, cfg.RoundHalfEven))
			seen = append(seen, r.Timestamp)
		}
	}
	sort.Ints(seen)
	assert.Equal(t, []int{0, 3, 80, 83, 85, 86, 751, 752, 753, 754, 3723}, seen)
	assert.Len(t, b, 7) // 0, 5, 80, 85, 750, 755, 3725
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil, 5, cfg.RoundHalfEven))
}
