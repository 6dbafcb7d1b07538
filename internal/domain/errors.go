package domain

import "errors"

var (
	// ErrUnsupportedFilter is returned for filters or sort indexes the source does not understand.
	ErrUnsupportedFilter = errors.New("unsupported filter")
	// ErrMissingField is returned when a decoded record lacks a required field.
	ErrMissingField = errors.New("missing field")
	ErrUnimplemented = errors.New("not implemented")
)
