// Package grant provides the Grant aggregate: a funder-issued award
// reconciled against the external grants registry.
package grant

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"floe/internal/shared/daterange"
	"floe/internal/shared/id"
)

// Grant is keyed for reconciliation by its external reference, the
// funder-assigned code (e.g. "NE/K011820/1"). The reference is globally
// unique; re-importing the same reference updates the existing row.
type Grant struct {
	dbID         uint
	nid          string
	reference    string
	title        string
	abstract     string
	publications []string
	duration     daterange.DateRange
	status       Status
	totalFunds   decimal.Decimal
	currency     string
	funderID     uint
	leadProject  bool
	createdAt    time.Time
	updatedAt    time.Time
}

// Attributes carries the field set written by both the create and the
// update paths of the reconciliation engine.
type Attributes struct {
	Title        string
	Abstract     string
	Publications []string
	Duration     daterange.DateRange
	Status       Status
	TotalFunds   decimal.Decimal
	Currency     string
	FunderID     uint
	LeadProject  bool
}

// New creates a new grant from its external reference and attributes.
func New(reference string, attrs Attributes) (*Grant, error) {
	if reference == "" {
		return nil, ErrReferenceRequired
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	nid, err := id.New(id.PrefixGrant)
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant id: %w", err)
	}

	now := time.Now()
	g := &Grant{
		nid:       nid,
		reference: reference,
		createdAt: now,
		updatedAt: now,
	}
	g.apply(attrs)
	return g, nil
}

// Reconstruct rebuilds a grant from persistence.
func Reconstruct(
	dbID uint,
	nid string,
	reference string,
	attrs Attributes,
	createdAt, updatedAt time.Time,
) (*Grant, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("grant ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("grant NID is required")
	}
	if reference == "" {
		return nil, ErrReferenceRequired
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	g := &Grant{
		dbID:      dbID,
		nid:       nid,
		reference: reference,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	g.apply(attrs)
	return g, nil
}

func validateAttributes(attrs Attributes) error {
	if attrs.Title == "" {
		return ErrTitleRequired
	}
	if !attrs.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, attrs.Status)
	}
	if attrs.Currency == "" {
		return ErrCurrencyRequired
	}
	if attrs.FunderID == 0 {
		return ErrFunderRequired
	}
	if attrs.Duration.IsZero() {
		return ErrDurationRequired
	}
	return nil
}

func (g *Grant) apply(attrs Attributes) {
	g.title = attrs.Title
	g.abstract = attrs.Abstract
	g.publications = append([]string(nil), attrs.Publications...)
	g.duration = attrs.Duration
	g.status = attrs.Status
	g.totalFunds = attrs.TotalFunds
	g.currency = attrs.Currency
	g.funderID = attrs.FunderID
	g.leadProject = attrs.LeadProject
}

func (g *Grant) ID() uint                      { return g.dbID }
func (g *Grant) NID() string                   { return g.nid }
func (g *Grant) Reference() string             { return g.reference }
func (g *Grant) Title() string                 { return g.title }
func (g *Grant) Abstract() string              { return g.abstract }
func (g *Grant) Publications() []string        { return append([]string(nil), g.publications...) }
func (g *Grant) Duration() daterange.DateRange { return g.duration }
func (g *Grant) Status() Status                { return g.status }
func (g *Grant) TotalFunds() decimal.Decimal   { return g.totalFunds }
func (g *Grant) Currency() string              { return g.currency }
func (g *Grant) FunderID() uint                { return g.funderID }
func (g *Grant) LeadProject() bool             { return g.leadProject }
func (g *Grant) CreatedAt() time.Time          { return g.createdAt }
func (g *Grant) UpdatedAt() time.Time          { return g.updatedAt }

// SetID sets the database ID after the initial insert.
func (g *Grant) SetID(dbID uint) error {
	if g.dbID != 0 {
		return fmt.Errorf("grant ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("grant ID cannot be zero")
	}
	g.dbID = dbID
	return nil
}

// Overwrite replaces the imported field set in place. The reference and
// neutral identifier never change.
func (g *Grant) Overwrite(attrs Attributes) error {
	if err := validateAttributes(attrs); err != nil {
		return err
	}
	g.apply(attrs)
	g.updatedAt = time.Now()
	return nil
}
