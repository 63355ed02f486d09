package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// GetAllInstruments walks the full instrument listing. No login is needed.
// Undecodable items are skipped; identical instruments are returned once.
func (c *Client) GetAllInstruments(ctx context.Context) []*types.Instrument {
	url, _ := c.session.URL(EndpointInstruments)
	pages := c.collector.Collect(ctx, url, nil, c.session.Headers())
	instruments := collectItems[types.Instrument](c.log, pages, true)
	c.log.Infof("collected %d instruments from %d pages", len(instruments), len(pages))
	return instruments
}

// GetInstrumentForSymbol looks an instrument up by ticker. No match, or any
// failure to get one, is ErrSymbolNotFound.
func (c *Client) GetInstrumentForSymbol(ctx context.Context, symbol string) (*types.Instrument, error) {
	url, _ := c.session.URL(EndpointInstruments)

	var resp types.InstrumentsResponse
	if err := c.getObject(ctx, url, map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, errors.Wrapf(ErrSymbolNotFound, "%s: %v", symbol, err)
	}
	if len(resp.Results) == 0 {
		return nil, errors.Wrap(ErrSymbolNotFound, symbol)
	}
	inst := resp.Results[0]
	return &inst, nil
}

// GetInstrumentFromURL fetches an instrument by its URL reference, as found
// on positions, orders and quotes.
func (c *Client) GetInstrumentFromURL(ctx context.Context, url string) (*types.Instrument, error) {
	var inst types.Instrument
	if err := c.getObject(ctx, url, nil, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}
