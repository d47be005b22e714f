package category

import (
	"fmt"
	"strings"
	"time"

	"floe/internal/shared/id"
)

// PathSeparator separates the segments of a term's materialized
// ancestor path.
const PathSeparator = "."

// Term is a concept within a scheme. Identity is the scheme-local
// identifier, unique within its scheme. The parent term is derived from
// the path rather than stored.
type Term struct {
	dbID       uint
	nid        string
	schemeID   uint
	identifier string
	name       string
	path       string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewTerm creates a new category term.
func NewTerm(schemeID uint, identifier, name, path string) (*Term, error) {
	if schemeID == 0 {
		return nil, ErrTermSchemeRequired
	}
	if identifier == "" {
		return nil, ErrTermIdentifierRequired
	}
	if name == "" {
		return nil, ErrTermNameRequired
	}

	nid, err := id.New(id.PrefixCategoryTerm)
	if err != nil {
		return nil, fmt.Errorf("failed to generate term id: %w", err)
	}

	now := time.Now()
	return &Term{
		nid:        nid,
		schemeID:   schemeID,
		identifier: identifier,
		name:       name,
		path:       path,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructTerm rebuilds a term from persistence.
func ReconstructTerm(
	dbID uint,
	nid string,
	schemeID uint,
	identifier, name, path string,
	createdAt, updatedAt time.Time,
) (*Term, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("term ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("term NID is required")
	}
	if identifier == "" {
		return nil, ErrTermIdentifierRequired
	}

	return &Term{
		dbID:       dbID,
		nid:        nid,
		schemeID:   schemeID,
		identifier: identifier,
		name:       name,
		path:       path,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (t *Term) ID() uint             { return t.dbID }
func (t *Term) NID() string          { return t.nid }
func (t *Term) SchemeID() uint       { return t.schemeID }
func (t *Term) Identifier() string   { return t.identifier }
func (t *Term) Name() string         { return t.name }
func (t *Term) Path() string         { return t.path }
func (t *Term) CreatedAt() time.Time { return t.createdAt }
func (t *Term) UpdatedAt() time.Time { return t.updatedAt }

// ParentPath returns the path with the last segment dropped, or empty
// when the term is a root.
func (t *Term) ParentPath() string {
	idx := strings.LastIndex(t.path, PathSeparator)
	if idx < 0 {
		return ""
	}
	return t.path[:idx]
}

// SetID sets the database ID after the initial insert.
func (t *Term) SetID(dbID uint) error {
	if t.dbID != 0 {
		return fmt.Errorf("term ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("term ID cannot be zero")
	}
	t.dbID = dbID
	return nil
}

// Upsert overwrites the name, path and owning scheme in place. Called
// when an external term is re-imported; the identifier never changes.
func (t *Term) Upsert(schemeID uint, name, path string) error {
	if schemeID == 0 {
		return ErrTermSchemeRequired
	}
	if name == "" {
		return ErrTermNameRequired
	}
	t.schemeID = schemeID
	t.name = name
	t.path = path
	t.updatedAt = time.Now()
	return nil
}
