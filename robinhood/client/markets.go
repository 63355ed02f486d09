package client

import (
	"context"
	"time"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// Exchange whose calendar drives market hours.
const marketMIC = "XNAS"

// MarketHoursURL is the schedule URL of the given calendar day.
func (c *Client) MarketHoursURL(date time.Time) string {
	markets, _ := c.session.URL(EndpointMarkets)
	return markets + marketMIC + "/hours/" + date.Format("2006-01-02")
}

// GetMarketStateForDate fetches the exchange schedule of date's calendar
// day, as seen in date's own location. No login is needed.
func (c *Client) GetMarketStateForDate(ctx context.Context, date time.Time) (*types.MarketState, error) {
	var state types.MarketState
	if err := c.getObject(ctx, c.MarketHoursURL(date), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetMarketStateToday is GetMarketStateForDate for the current day.
func (c *Client) GetMarketStateToday(ctx context.Context) (*types.MarketState, error) {
	return c.GetMarketStateForDate(ctx, time.Now())
}
