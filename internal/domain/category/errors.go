package category

import "errors"

var (
	// ErrSchemeNotFound indicates the category scheme was not found
	ErrSchemeNotFound = errors.New("category scheme not found")

	// ErrNamespaceRequired indicates a missing scheme namespace
	ErrNamespaceRequired = errors.New("category scheme namespace is required")

	// ErrNamespaceExists indicates a scheme with the namespace already exists
	ErrNamespaceExists = errors.New("category scheme namespace already exists")

	// ErrSchemeNameRequired indicates a missing scheme name
	ErrSchemeNameRequired = errors.New("category scheme name is required")

	// ErrTermNotFound indicates the category term was not found
	ErrTermNotFound = errors.New("category term not found")

	// ErrTermSchemeRequired indicates a term without an owning scheme
	ErrTermSchemeRequired = errors.New("category term scheme is required")

	// ErrTermIdentifierRequired indicates a missing scheme-local identifier
	ErrTermIdentifierRequired = errors.New("category term identifier is required")

	// ErrTermNameRequired indicates a missing term name
	ErrTermNameRequired = errors.New("category term name is required")

	// ErrDuplicateLink indicates a categorisation already exists for the (project, term) pair
	ErrDuplicateLink = errors.New("categorisation already exists")

	// ErrCategorisationNotFound indicates the categorisation was not found
	ErrCategorisationNotFound = errors.New("categorisation not found")
)
