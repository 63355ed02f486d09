package types

import "github.com/shopspring/decimal"

// Execution is a single fill of an order.
type Execution struct {
	ID             string          `json:"id"`
	Price          decimal.Decimal `json:"price"`
	Quantity       decimal.Decimal `json:"quantity"`
	SettlementDate string          `json:"settlement_date"`
	Timestamp      string          `json:"timestamp"`
}

// Order is an order as reported by the orders endpoint. Instrument and
// Account are URL references, resolved on demand.
type Order struct {
	ID                 string          `json:"id"`
	State              string          `json:"state"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
	AveragePrice       decimal.Decimal `json:"average_price"`
	Price              decimal.Decimal `json:"price"`
	URL                string          `json:"url"`
	Side               Side            `json:"side"`
	Type               OrderType       `json:"type"`
	TimeInForce        TimeInForce     `json:"time_in_force"`
	Trigger            Trigger         `json:"trigger"`
	Instrument         string          `json:"instrument"`
	Account            string          `json:"account"`
	Cancel             *string         `json:"cancel"`
	Quantity           decimal.Decimal `json:"quantity"`
	CumulativeQuantity decimal.Decimal `json:"cumulative_quantity"`
	Fees               decimal.Decimal `json:"fees"`
	RejectReason       *string         `json:"reject_reason"`
	Executions         []Execution     `json:"executions"`
}

// IsFilled reports whether the order reached the filled state.
func (o *Order) IsFilled() bool {
	return o.State == "filled"
}

// Cancellable reports whether the server still offers a cancel link.
func (o *Order) Cancellable() bool {
	return o.Cancel != nil && *o.Cancel != ""
}
