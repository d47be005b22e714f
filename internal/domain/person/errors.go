package person

import "errors"

var (
	// ErrNameRequired indicates both name parts were empty
	ErrNameRequired = errors.New("person name is required")

	// ErrNotFound indicates the person was not found
	ErrNotFound = errors.New("person not found")
)
