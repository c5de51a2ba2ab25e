package catalog

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate indicates a tool with the same name already exists.
	ErrDuplicate = errors.New("duplicate tool name")
)
