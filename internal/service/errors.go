package service

import "errors"

var (
	ErrEmptyQuery       = errors.New("location query cannot be empty")
	ErrInvalidLocation  = errors.New("location must have a stored id")
	ErrLocationNotFound = errors.New("no location matched the query")
	ErrProvider         = errors.New("provider request failed")
)
