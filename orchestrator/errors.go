package orchestrator

import (
	"errors"
	"fmt"
)

var (
	ErrNoComments            = errors.New("no comments returned")
	ErrEmptyInput            = errors.New("no timestamped comments to bucket")
	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")
	ErrNoCommentSource       = errors.New("pipeline has no comment source")
)

// RetrievalError wraps a comment source failure.
type RetrievalError struct {
	VideoID string
	Err     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve comments for %q: %v", e.VideoID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// ClassificationError is a classifier failure for a single comment.
type ClassificationError struct {
	Index int // position in the input comment list
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify comment %d: %v", e.Index, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
