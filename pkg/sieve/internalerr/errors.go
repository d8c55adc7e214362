package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrExportWrite       = errors.New("export write failed")
	ErrEmptyCorpus       = errors.New("no sentences accepted")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
