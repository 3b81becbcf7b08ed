package domain

import "errors"

// ErrMissingRequiredField means a sample lacks a value needed to synthesize a
// report. Callers should show the raw data instead.
var ErrMissingRequiredField = errors.New("missing required field")
