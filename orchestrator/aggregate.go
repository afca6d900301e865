package orchestrator

import (
	"math"
	"sort"

	cfg "github.com/maastricht-university/comment-moments/config"
)

// MinBucketSize is the significance threshold: floor of the mean bucket
// population in adaptive mode, the configured minimum in fixed mode.
func MinBucketSize(b Buckets, c cfg.Analysis) (int, error) {
	if len(b) == 0 {
		return 0, ErrEmptyInput
	}
	if c.Significance == cfg.SignificanceFixed {
		return c.MinBucketSize, nil
	}
	total := 0
	for _, recs := range b {
		total += len(recs)
	}
	return int(math.Floor(float64(total) / float64(len(b)))), nil
}

// Aggregate resolves every significant bucket and returns the non-neutral
// moments ordered by time.
func Aggregate(b Buckets, c cfg.Analysis) ([]Moment, error) {
	threshold, err := MinBucketSize(b, c)
	if err != nil {
		return nil, err
	}

	keys := make([]int, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	moments := []Moment{}
	for _, k := range keys {
		recs := b[k]
		if len(recs) < threshold {
			continue
		}
		label, exemplar, ok := Resolve(recs)
		if !ok || label == c.NeutralLabel {
			continue
		}
		moments = append(moments, Moment{Timestamp: k, Emotion: label, Exemplar: exemplar})
	}
	return moments, nil
}
