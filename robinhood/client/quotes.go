package client

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// GetQuotes fetches quotes for symbols in one request. An empty symbol list
// returns no quotes without touching the network. Null entries (unknown
// symbols) are dropped.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]*types.Quote, error) {
	if len(symbols) == 0 {
		return []*types.Quote{}, nil
	}

	url, _ := c.session.URL(EndpointQuotes)
	params := map[string]string{"symbols": strings.Join(symbols, ",")}

	var resp types.QuotesResponse
	if err := c.getObject(ctx, url, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, wrapTransport(nil, "quotes response has no results")
	}

	quotes := make([]*types.Quote, 0, len(resp.Results))
	for _, q := range resp.Results {
		if q != nil {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}

// GetQuote fetches the quote of one symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*types.Quote, error) {
	quotes, err := c.GetQuotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.Wrapf(ErrSymbolNotFound, "no quote for %s", symbol)
	}
	return quotes[0], nil
}
