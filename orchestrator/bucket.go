package orchestrator

import (
	"math"

	cfg "github.com/maastricht-university/comment-moments/config"
)

// BucketKey rounds t seconds to a multiple of granularity. half_even matches
// round-half-to-even of t/granularity; half_up rounds .5 away from zero;
// floor truncates.
func BucketKey(t, granularity int, rounding string) int {
	q := float64(t) / float64(granularity)
	switch rounding {
	case cfg.RoundHalfUp:
		q = math.Floor(q + 0.5)
	case cfg.RoundFloor:
		q = math.Floor(q)
	default:
		q = math.RoundToEven(q)
	}
	return int(q) * granularity
}

// Group partitions records by rounded timestamp.
func Group(records []Record, granularity int, rounding string) Buckets {
	b := make(Buckets)
	for _, r := range records {
		k := BucketKey(r.Timestamp, granularity, rounding)
		b[k] = append(b[k], r)
	}
	return b
}
