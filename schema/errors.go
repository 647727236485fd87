package schema

import "errors"

// Sentinel errors returned by the session and its views.
var (
	ErrEmptyStore         = errors.New("no data available to export")
	ErrUnknownCriterion   = errors.New("unknown criterion")
	ErrUnknownEntity      = errors.New("unknown entity")
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateCriterion = errors.New("duplicate criterion")
	ErrInvalidCriterion   = errors.New("invalid criterion")
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrNonNumeric         = errors.New("value is not a finite number")
)
