package analysis

import "errors"

var (
	// ErrEmptyInput indicates there is no resume text to work on.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedResponse indicates the model output could not be parsed
	// into a valid analysis.
	ErrMalformedResponse = errors.New("malformed model response")
)
