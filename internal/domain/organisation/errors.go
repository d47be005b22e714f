package organisation

import "errors"

var (
	// ErrNameRequired indicates a missing organisation name
	ErrNameRequired = errors.New("organisation name is required")

	// ErrNotFound indicates the organisation was not found
	ErrNotFound = errors.New("organisation not found")

	// ErrRegistryIDExists indicates an organisation with the registry identifier already exists
	ErrRegistryIDExists = errors.New("organisation registry identifier already exists")
)
