// Package category provides the category taxonomy aggregates: schemes,
// hierarchical terms and the categorisation join entity linking projects
// to terms.
package category

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Scheme is a category namespace, e.g. a published vocabulary. The
// namespace is unique across the catalogue.
type Scheme struct {
	dbID         uint
	nid          string
	namespace    string
	name         string
	rootConcepts []string
	metadata     map[string]any
	createdAt    time.Time
	updatedAt    time.Time
}

// NewScheme creates a new category scheme.
func NewScheme(namespace, name string, rootConcepts []string, metadata map[string]any) (*Scheme, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}
	if name == "" {
		return nil, ErrSchemeNameRequired
	}

	nid, err := id.New(id.PrefixCategoryScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scheme id: %w", err)
	}

	now := time.Now()
	return &Scheme{
		nid:          nid,
		namespace:    namespace,
		name:         name,
		rootConcepts: append([]string(nil), rootConcepts...),
		metadata:     metadata,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructScheme rebuilds a scheme from persistence.
func ReconstructScheme(
	dbID uint,
	nid string,
	namespace, name string,
	rootConcepts []string,
	metadata map[string]any,
	createdAt, updatedAt time.Time,
) (*Scheme, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("scheme ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("scheme NID is required")
	}
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}

	return &Scheme{
		dbID:         dbID,
		nid:          nid,
		namespace:    namespace,
		name:         name,
		rootConcepts: append([]string(nil), rootConcepts...),
		metadata:     metadata,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (s *Scheme) ID() uint                 { return s.dbID }
func (s *Scheme) NID() string              { return s.nid }
func (s *Scheme) Namespace() string        { return s.namespace }
func (s *Scheme) Name() string             { return s.name }
func (s *Scheme) RootConcepts() []string   { return append([]string(nil), s.rootConcepts...) }
func (s *Scheme) Metadata() map[string]any { return s.metadata }
func (s *Scheme) CreatedAt() time.Time     { return s.createdAt }
func (s *Scheme) UpdatedAt() time.Time     { return s.updatedAt }

// SetID sets the database ID after the initial insert.
func (s *Scheme) SetID(dbID uint) error {
	if s.dbID != 0 {
		return fmt.Errorf("scheme ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("scheme ID cannot be zero")
	}
	s.dbID = dbID
	return nil
}

// UpdateDetails overwrites the descriptive fields. The namespace is
// immutable: it is the scheme's identity.
func (s *Scheme) UpdateDetails(name string, rootConcepts []string, metadata map[string]any) error {
	if name == "" {
		return ErrSchemeNameRequired
	}
	s.name = name
	s.rootConcepts = append([]string(nil), rootConcepts...)
	s.metadata = metadata
	s.updatedAt = time.Now()
	return nil
}
