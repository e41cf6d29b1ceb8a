package domain

import "errors"

var (
	// ErrMalformedInput marks structural input problems (missing columns, ragged rows).
	// The whole invocation fails and no partial result is returned.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDuplicateReference is returned when duplicate join keys are rejected by policy
	ErrDuplicateReference = errors.New("duplicate reference")

	// ErrUnsupportedFormat is returned for uploads and exports in an unknown format
	ErrUnsupportedFormat = errors.New("unsupported format")

	ErrJobNotFound = errors.New("reconciliation job not found")
)
