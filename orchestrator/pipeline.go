package orchestrator

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/comment-moments/clients"
	cfg "github.com/maastricht-university/comment-moments/config"
)

// Pipeline is the comment-to-moment analysis. It holds no state between
// runs; the comment source and classifier are injected.
type Pipeline struct {
	cfg    cfg.Analysis
	src    clients.CommentSource
	filter *Filter
	log    logrus.FieldLogger
}

// NewPipeline validates c and wires the collaborators. src may be nil when
// only Analyze is used.
func NewPipeline(c cfg.Analysis, src clients.CommentSource, clf clients.Classifier, log logrus.FieldLogger) (*Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if clf == nil {
		return nil, errors.New("pipeline: classifier is nil")
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Pipeline{cfg: c, src: src, filter: NewFilter(c, clf, log), log: log}, nil
}

// Run fetches up to maxResults comments of videoID (cfg.MaxComments when
// maxResults <= 0) and analyzes them.
func (p *Pipeline) Run(ctx context.Context, videoID string, maxResults int) ([]Moment, error) {
	if p.src == nil {
		return nil, ErrNoCommentSource
	}
	if maxResults <= 0 {
		maxResults = p.cfg.MaxComments
	}
	log := p.log.WithField("video_id", videoID)

	start := time.Now()
	comments, err := p.src.FetchComments(ctx, videoID, maxResults)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetrievalError{VideoID: videoID, Err: err}
	}
	if len(comments) == 0 {
		return nil, &RetrievalError{VideoID: videoID, Err: ErrNoComments}
	}
	log.WithField("comments", len(comments)).WithField("took", time.Since(start).String()).Debug("fetched comments")

	return p.analyze(ctx, log, comments)
}

// Analyze runs the pipeline over a caller-supplied comment list.
func (p *Pipeline) Analyze(ctx context.Context, comments []string) ([]Moment, error) {
	return p.analyze(ctx, p.log, comments)
}

func (p *Pipeline) analyze(ctx context.Context, log logrus.FieldLogger, comments []string) ([]Moment, error) {
	records, err := p.filter.Apply(ctx, comments)
	if err != nil {
		return nil, err
	}

	buckets := Group(records, p.cfg.Granularity, p.cfg.Rounding)
	moments, err := Aggregate(buckets, p.cfg)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"comments": len(comments),
		"records":  len(records),
		"buckets":  len(buckets),
		"moments":  len(moments),
	}).Info("analysis complete")
	return moments, nil
}
