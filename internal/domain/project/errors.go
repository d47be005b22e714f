package project

import "errors"

var (
	// ErrNotFound indicates the project was not found
	ErrNotFound = errors.New("project not found")

	// ErrTitleRequired indicates a missing title
	ErrTitleRequired = errors.New("project title is required")

	// ErrGrantReferenceRequired indicates a missing grant reference
	ErrGrantReferenceRequired = errors.New("project grant reference is required")

	// ErrDurationRequired indicates a missing project duration
	ErrDurationRequired = errors.New("project duration is required")

	// ErrInvalidRole indicates a role outside the closed enumeration
	ErrInvalidRole = errors.New("invalid participant role")

	// ErrAllocationNotFound indicates no allocation exists for the grant
	ErrAllocationNotFound = errors.New("allocation not found")
)
