package client

import (
	"context"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// GetPositions lists the positions still held by the account. Positions
// with a quantity of exactly zero are dropped, as are items that fail to
// decode.
func (c *Client) GetPositions(ctx context.Context) ([]*types.Position, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	url, err := c.session.URL(EndpointPositions)
	if err != nil {
		return nil, err
	}

	c.log.Info("getting owned assets")
	pages := c.collector.Collect(ctx, url, nil, c.session.Headers())

	var held []*types.Position
	for _, p := range collectItems[types.Position](c.log, pages, false) {
		if p.Held() {
			held = append(held, p)
		}
	}
	return held, nil
}
