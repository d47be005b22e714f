package gtr

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"floe/internal/shared/daterange"
)

// FundAdapter wraps one fetched registry fund record: the money, the
// funding period and the funder organisation.
type FundAdapter struct {
	funder   *OrganisationAdapter
	duration daterange.DateRange
	amount   decimal.Decimal
	currency string
}

// NewFundAdapter fetches a fund resource and validates its funder link,
// period and value. Exactly one FUNDER link is required.
func NewFundAdapter(ctx context.Context, client *Client, tables *MappingTables, uri string) (*FundAdapter, error) {
	record, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	links, err := client.OrganizeLinks(record)
	if err != nil {
		return nil, fmt.Errorf("fund resource %s: %w", uri, err)
	}

	funderURI, err := links.One("FUNDER")
	if err != nil {
		return nil, fmt.Errorf("fund resource %s: %w", uri, err)
	}
	funder, err := NewOrganisationAdapter(ctx, client, tables, funderURI, RoleFunder)
	if err != nil {
		return nil, err
	}

	start, ok := record.Number("start")
	if !ok {
		return nil, fmt.Errorf("fund resource %s missing start", uri)
	}
	end, ok := record.Number("end")
	if !ok {
		return nil, fmt.Errorf("fund resource %s missing end", uri)
	}
	duration, err := daterange.FromEpochMillis(int64(start), int64(end))
	if err != nil {
		return nil, fmt.Errorf("fund resource %s has invalid period: %w", uri, err)
	}

	value, ok := record["valuePounds"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fund resource %s missing valuePounds", uri)
	}
	amount, ok := value["amount"].(float64)
	if !ok {
		return nil, fmt.Errorf("fund resource %s missing amount", uri)
	}
	code, ok := value["currencyCode"].(string)
	if !ok {
		return nil, fmt.Errorf("fund resource %s missing currencyCode", uri)
	}
	currency, err := MapCurrency(code)
	if err != nil {
		return nil, fmt.Errorf("fund resource %s: %w", uri, err)
	}

	return &FundAdapter{
		funder:   funder,
		duration: duration,
		amount:   decimal.NewFromFloat(amount),
		currency: currency,
	}, nil
}

func (a *FundAdapter) Funder() *OrganisationAdapter { return a.funder }
func (a *FundAdapter) Duration() daterange.DateRange {
	return a.duration
}
func (a *FundAdapter) Amount() decimal.Decimal { return a.amount }
func (a *FundAdapter) Currency() string        { return a.currency }
