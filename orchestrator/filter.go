package orchestrator

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/maastricht-university/comment-moments/clients"
	cfg "github.com/maastricht-university/comment-moments/config"
)

// Filter turns raw comments into classified, timestamped records.
type Filter struct {
	cfg cfg.Analysis
	clf clients.Classifier
	log logrus.FieldLogger
}

func NewFilter(c cfg.Analysis, clf clients.Classifier, log logrus.FieldLogger) *Filter {
	return &Filter{cfg: c, clf: clf, log: log}
}

type candidate struct {
	index      int
	text       string
	normalized string
	timestamp  int
}

// Apply drops over-long comments and comments without exactly one timestamp,
// classifies the rest (up to cfg.Concurrency at a time) and keeps the labels
// whose confidence clears the threshold. A failed classification skips its
// comment; if every classification fails the run fails with
// ErrClassifierUnavailable.
func (f *Filter) Apply(ctx context.Context, comments []string) ([]Record, error) {
	var cands []candidate
	for i, c := range comments {
		if f.cfg.MaxCommentLength > 0 && utf8.RuneCountInString(c) > f.cfg.MaxCommentLength {
			continue
		}
		ts, ok := ExtractTimestamp(c)
		if !ok {
			continue
		}
		cands = append(cands, candidate{index: i, text: c, normalized: Normalize(c), timestamp: ts})
	}
	if len(cands) == 0 {
		return nil, nil
	}

	results := make([][]Record, len(cands))
	failed := make([]error, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)
	for i := range cands {
		i := i
		g.Go(func() error {
			scores, err := f.clf.Classify(gctx, cands[i].normalized)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed[i] = &ClassificationError{Index: cands[i].index, Err: err}
				return nil
			}
			results[i] = f.records(cands[i], scores)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Record
	var nFailed int
	var lastErr error
	for i := range cands {
		if failed[i] != nil {
			nFailed++
			lastErr = failed[i]
			f.log.WithError(failed[i]).Warn("skipping comment")
			continue
		}
		out = append(out, results[i]...)
	}
	if nFailed == len(cands) {
		return nil, fmt.Errorf("%w: all %d classifications failed: %w", ErrClassifierUnavailable, nFailed, lastErr)
	}
	return out, nil
}

func (f *Filter) records(c candidate, scores []clients.EmoScore) []Record {
	text := c.text
	if f.cfg.StoreText == cfg.StoreNormalized {
		text = c.normalized
	}
	var out []Record
	for _, s := range f.selectLabels(scores) {
		out = append(out, Record{Text: text, Emotion: s, Timestamp: c.timestamp})
	}
	return out
}

// selectLabels applies the label policy: the top-1 label (first on ties) or
// every label, each only when its confidence is strictly above the threshold.
func (f *Filter) selectLabels(scores []clients.EmoScore) []EmotionScore {
	if len(scores) == 0 {
		return nil
	}
	if f.cfg.LabelPolicy == cfg.PolicyMulti {
		var out []EmotionScore
		for _, s := range scores {
			if s.Score > f.cfg.ConfidenceThreshold {
				out = append(out, EmotionScore{Label: s.Label, Score: s.Score})
			}
		}
		return out
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	if top.Score > f.cfg.ConfidenceThreshold {
		return []EmotionScore{{Label: top.Label, Score: top.Score}}
	}
	return nil
}
