package grant

import "errors"

var (
	// ErrNotFound indicates the grant was not found
	ErrNotFound = errors.New("grant not found")

	// ErrReferenceRequired indicates a missing external reference
	ErrReferenceRequired = errors.New("grant reference is required")

	// ErrReferenceExists indicates a grant with the reference already exists
	ErrReferenceExists = errors.New("grant reference already exists")

	// ErrTitleRequired indicates a missing title
	ErrTitleRequired = errors.New("grant title is required")

	// ErrInvalidStatus indicates a status outside the closed enumeration
	ErrInvalidStatus = errors.New("invalid grant status")

	// ErrCurrencyRequired indicates a missing currency code
	ErrCurrencyRequired = errors.New("grant currency is required")

	// ErrFunderRequired indicates a missing funder organisation
	ErrFunderRequired = errors.New("grant funder is required")

	// ErrDurationRequired indicates a missing duration
	ErrDurationRequired = errors.New("grant duration is required")
)
