package gtr

import (
	"context"
)

// PublicationAdapter wraps one fetched registry publication. Only the
// DOI is of interest and its absence is not an error.
type PublicationAdapter struct {
	doi string
}

// NewPublicationAdapter fetches a publication resource.
func NewPublicationAdapter(ctx context.Context, client *Client, uri string) (*PublicationAdapter, error) {
	record, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	doi, _ := record.String("doi")
	return &PublicationAdapter{doi: doi}, nil
}

func (a *PublicationAdapter) DOI() string { return a.doi }
