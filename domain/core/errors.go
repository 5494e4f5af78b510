package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Terminal ingest errors
	ErrUnsupportedFormat = errors.New("unsupported evidence format")
	ErrParseFailure      = errors.New("evidence could not be parsed")
	ErrNoDelimiter       = fmt.Errorf("%w: no delimiter produced more than one column", ErrParseFailure)
	ErrEmptyTable        = fmt.Errorf("%w: table is empty", ErrParseFailure)
	ErrNotTabular        = fmt.Errorf("%w: JSON structure not suitable for analysis", ErrParseFailure)

	// Non-terminal analysis errors
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrNonFiniteStatistic = errors.New("statistic is not a finite number")
	ErrAssessment         = errors.New("diagnostic assessment failed")
)

// NewParseError wraps a reader failure with the format it was reading.
func NewParseError(format string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParseFailure, format, err)
}

// IsParseFailure reports whether err is a terminal parse failure.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure)
}

// IsUnsupportedFormat reports whether err is a terminal format rejection.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}
