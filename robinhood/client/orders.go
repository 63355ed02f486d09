package client

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cheddar/hoodbot/robinhood/types"
)

// ordersDateLayout formats the updated_at[gte] filter. The sub-second part
// is a fixed literal appended by ordersDate.
const ordersDateLayout = "2006-01-02T15:04:05"

func ordersDate(t time.Time) string {
	return t.UTC().Format(ordersDateLayout) + ".000000Z"
}

// BuyShares places a limit buy order.
func (c *Client) BuyShares(ctx context.Context, symbol string, shares int, limit decimal.Decimal) (*types.Order, error) {
	return c.PlaceOrder(ctx, symbol, shares, types.SideBuy, limit)
}

// SellShares places a limit sell order.
func (c *Client) SellShares(ctx context.Context, symbol string, shares int, limit decimal.Decimal) (*types.Order, error) {
	return c.PlaceOrder(ctx, symbol, shares, types.SideSell, limit)
}

// PlaceOrder places a good-for-day limit order, extended hours enabled.
// The price is sent with exactly two decimals. Any rejection is a
// *RejectionError matching ErrOrderRejected.
func (c *Client) PlaceOrder(ctx context.Context, symbol string, shares int, side types.Side, limit decimal.Decimal) (*types.Order, error) {
	if !side.Valid() {
		return nil, errors.Wrapf(ErrOrderRejected, "unsupported side %q", side)
	}
	if shares <= 0 {
		return nil, errors.Wrapf(ErrOrderRejected, "invalid share count %d", shares)
	}

	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}

	log := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"symbol":     symbol,
		"side":       side,
	})

	instrument, err := c.GetInstrumentForSymbol(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("instrument lookup failed")
		return nil, err
	}
	if instrument.URL == "" {
		return nil, errors.Wrapf(ErrSymbolNotFound, "instrument for %s has no url", symbol)
	}

	accountURL, err := c.session.URL(EndpointAccount)
	if err != nil {
		return nil, err
	}
	ordersURL, _ := c.session.URL(EndpointOrders)

	price := limit.StringFixed(2)
	form := map[string]string{
		"account":              accountURL,
		"extended_hours":       "true",
		"override_dtbp_checks": "false",
		"instrument":           instrument.URL,
		"side":                 string(side),
		"quantity":             strconv.Itoa(shares),
		"symbol":               symbol,
		"time_in_force":        string(types.TimeInForceGFD),
		"trigger":              string(types.TriggerImmediate),
		"price":                price,
		"type":                 string(types.OrderTypeLimit),
	}

	log.Infof("placing %s order for %d shares at %s", side, shares, price)
	res, err := c.transport.PostForm(ctx, ordersURL, form, c.session.Headers())
	if err != nil {
		log.WithError(err).Error("order request failed")
		return nil, wrapTransport(err, "POST %s", ordersURL)
	}

	order, err := parseOrderResponse(res.Body, symbol, side)
	if err != nil {
		log.WithError(err).Warn("order rejected")
		return nil, err
	}
	log.WithField("order_id", order.ID).Info("order placed")
	return order, nil
}

// parseOrderResponse validates an order placement body. The checks run in
// order and the first that fires names the rejection marker.
func parseOrderResponse(body []byte, symbol string, side types.Side) (*types.Order, error) {
	reject := func(marker string) error {
		return &RejectionError{Marker: marker, Symbol: symbol, Side: string(side), Body: snippet(body)}
	}

	obj, err := decodeObject(body)
	if err != nil {
		return nil, reject(MarkerMalformed)
	}
	if _, ok := obj["non_field_errors"]; ok {
		return nil, reject(MarkerNonFieldErrors)
	}
	if _, ok := obj["detail"]; ok {
		return nil, reject(MarkerDetail)
	}
	if raw, ok := obj["reject_reason"]; ok && !isNull(raw) {
		return nil, reject(MarkerRejectReason)
	}

	var order types.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, reject(MarkerMalformed)
	}
	if order.ID == "" {
		return nil, reject(MarkerEmptyID)
	}
	return &order, nil
}

// GetOrderFromURL fetches an order by its URL reference.
func (c *Client) GetOrderFromURL(ctx context.Context, url string) (*types.Order, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	var order types.Order
	if err := c.getObject(ctx, url, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersAfterDate lists orders updated at or after since. Undecodable
// items are skipped and identical orders are returned once.
func (c *Client) GetOrdersAfterDate(ctx context.Context, since time.Time) ([]*types.Order, error) {
	if err := c.session.EnsureEstablished(ctx); err != nil {
		return nil, err
	}
	url, _ := c.session.URL(EndpointOrders)

	params := map[string]string{"updated_at[gte]": ordersDate(since)}
	pages := c.collector.Collect(ctx, url, params, c.session.Headers())
	return collectItems[types.Order](c.log, pages, true), nil
}
