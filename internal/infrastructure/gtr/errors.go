package gtr

import (
	"errors"
	"fmt"
)

// UnmappedOrganisationError indicates an external organisation resource
// with no entry in the organisation mapping table.
type UnmappedOrganisationError struct {
	ResourceURI string
}

func (e *UnmappedOrganisationError) Error() string {
	return fmt.Sprintf("no organisation mapping for resource %s", e.ResourceURI)
}

// UnmappedPersonError indicates an external person resource with no
// entry in the people mapping table.
type UnmappedPersonError struct {
	ResourceURI string
}

func (e *UnmappedPersonError) Error() string {
	return fmt.Sprintf("no person mapping for resource %s", e.ResourceURI)
}

// UnmappedTopicError indicates a research topic whose identifier is
// absent from the strict topic mapping table.
type UnmappedTopicError struct {
	ID    string
	Label string
}

func (e *UnmappedTopicError) Error() string {
	return fmt.Sprintf("no topic mapping for %s (%s)", e.ID, e.Label)
}

// UnmappedSubjectError indicates a research subject whose identifier is
// absent from the strict subject mapping table.
type UnmappedSubjectError struct {
	ID    string
	Label string
}

func (e *UnmappedSubjectError) Error() string {
	return fmt.Sprintf("no subject mapping for %s (%s)", e.ID, e.Label)
}

// IsUnmapped reports whether err is one of the unmapped-entity errors.
// These are operator-recoverable: the fix is a mapping table entry, not
// a code change.
func IsUnmapped(err error) bool {
	var orgErr *UnmappedOrganisationError
	var personErr *UnmappedPersonError
	var topicErr *UnmappedTopicError
	var subjectErr *UnmappedSubjectError
	return errors.As(err, &orgErr) ||
		errors.As(err, &personErr) ||
		errors.As(err, &topicErr) ||
		errors.As(err, &subjectErr)
}

var (
	// ErrProjectNotFound indicates a registry search returned no match
	ErrProjectNotFound = errors.New("no external project found for reference")

	// ErrAmbiguousReference indicates a registry search returned more than one match
	ErrAmbiguousReference = errors.New("multiple external projects found for reference")
)
