package client

import (
	"context"
	"encoding/json"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// GetPortfolio fetches the account portfolio.
func (c *Client) GetPortfolio(ctx context.Context) (*types.Portfolio, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	url, err := c.session.URL(EndpointPortfolio)
	if err != nil {
		return nil, err
	}

	var p types.Portfolio
	if err := c.getObject(ctx, url, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetMarginBalances fetches the margin balances of the account. A missing
// or null margin_balances object is ErrTransport.
func (c *Client) GetMarginBalances(ctx context.Context) (*types.MarginBalances, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	url, err := c.session.URL(EndpointAccount)
	if err != nil {
		return nil, err
	}

	var account struct {
		MarginBalances json.RawMessage `json:"margin_balances"`
	}
	if err := c.getObject(ctx, url, nil, &account); err != nil {
		return nil, err
	}
	if isNull(account.MarginBalances) {
		return nil, wrapTransport(nil, "account has no margin_balances")
	}

	var mb types.MarginBalances
	if err := json.Unmarshal(account.MarginBalances, &mb); err != nil {
		return nil, wrapTransport(err, "unable to decode margin_balances [%s]", snippet(account.MarginBalances))
	}
	c.log.Infof("got buying power of %s", mb.OvernightBuyingPower)
	return &mb, nil
}

// GetHistoricalValues fetches equity history of the portfolio. Items that
// fail to decode are skipped.
func (c *Client) GetHistoricalValues(ctx context.Context, span types.Span, interval types.Interval, bounds types.Bounds) ([]*types.EquityHistorical, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	url, err := c.session.URL(EndpointPortfolioHistoricals)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"span":     string(span),
		"interval": string(interval),
		"bounds":   string(bounds),
	}
	var resp struct {
		EquityHistoricals []json.RawMessage `json:"equity_historicals"`
	}
	if err := c.getObject(ctx, url, params, &resp); err != nil {
		return nil, err
	}
	if resp.EquityHistoricals == nil {
		return nil, wrapTransport(nil, "historicals response has no equity_historicals")
	}

	return collectItems[types.EquityHistorical](c.log, []Page{{URL: url, Results: resp.EquityHistoricals}}, false), nil
}
