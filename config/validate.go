package config

import (
	"errors"
	"fmt"
)

// ValidationError reports one invalid configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Validate checks every analysis and service knob and joins all failures.
func (r *Root) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if err := r.Analysis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if r.Services.YouTube.PageSize < 1 || r.Services.YouTube.PageSize > 100 {
		bad("services.youtube.page_size", "must be in [1,100], got %d", r.Services.YouTube.PageSize)
	}
	if r.Services.Emotion.Retries < 0 {
		bad("services.emotion.retries", "must be >= 0, got %d", r.Services.Emotion.Retries)
	}
	if r.Services.YouTube.Retries < 0 {
		bad("services.youtube.retries", "must be >= 0, got %d", r.Services.YouTube.Retries)
	}
	if r.Services.Redis.TTL < 0 {
		bad("services.redis.ttl", "must be >= 0, got %s", r.Services.Redis.TTL)
	}
	if r.Server.RequestTimeout < 0 {
		bad("server.request_timeout", "must be >= 0, got %s", r.Server.RequestTimeout)
	}
	return errors.Join(errs...)
}

// Validate checks the analysis knobs only.
func (a Analysis) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: "analysis." + field, Reason: fmt.Sprintf(format, args...)})
	}

	if a.ConfidenceThreshold < 0 || a.ConfidenceThreshold > 1 {
		bad("confidence_threshold", "must be in [0,1], got %v", a.ConfidenceThreshold)
	}
	if a.MaxCommentLength < 0 {
		bad("max_comment_length", "must be >= 0, got %d", a.MaxCommentLength)
	}
	if a.Granularity <= 0 {
		bad("granularity", "must be > 0, got %d", a.Granularity)
	}
	switch a.Rounding {
	case RoundHalfEven, RoundHalfUp, RoundFloor:
	default:
		bad("rounding", "unknown mode %q", a.Rounding)
	}
	switch a.Significance {
	case SignificanceAdaptive, SignificanceFixed:
	default:
		bad("significance", "unknown mode %q", a.Significance)
	}
	if a.MinBucketSize < 1 {
		bad("min_bucket_size", "must be >= 1, got %d", a.MinBucketSize)
	}
	switch a.LabelPolicy {
	case PolicyTop1, PolicyMulti:
	default:
		bad("label_policy", "unknown policy %q", a.LabelPolicy)
	}
	if a.NeutralLabel == "" {
		bad("neutral_label", "must not be empty")
	}
	switch a.StoreText {
	case StoreOriginal, StoreNormalized:
	default:
		bad("store_text", "unknown value %q", a.StoreText)
	}
	if a.Concurrency < 1 {
		bad("concurrency", "must be >= 1, got %d", a.Concurrency)
	}
	if a.MaxComments < 1 {
		bad("max_comments", "must be >= 1, got %d", a.MaxComments)
	}
	return errors.Join(errs...)
}
