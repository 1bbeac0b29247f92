package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product identity cannot be resolved
	// in the loaded dataset
	ErrProductNotFound = errors.New("product not found in dataset")

	// ErrEmptyDataset is returned when ingestion produces zero usable rows
	ErrEmptyDataset = errors.New("no usable rows in any source table")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoCategoryRecognized is returned when category extraction yields no
	// valid macro category for a free-text query
	ErrNoCategoryRecognized = errors.New("no recognizable category in query")

	// ErrNoCandidates is returned when a category has no rows with all core
	// nutrients reported, so nothing can be ranked
	ErrNoCandidates = errors.New("no rankable products for category")

	// ErrReasoningFailure is returned when a reasoning service call fails
	ErrReasoningFailure = errors.New("reasoning service request failed")

	// ErrEmptyNarrative is returned when the reasoning service responds with
	// an empty narrative
	ErrEmptyNarrative = errors.New("reasoning service returned empty narrative")
)
