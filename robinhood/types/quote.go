package types

import "github.com/shopspring/decimal"

// Quote is a pricing snapshot for one symbol.
type Quote struct {
	Symbol                      string          `json:"symbol"`
	AskPrice                    decimal.Decimal `json:"ask_price"`
	AskSize                     int64           `json:"ask_size"`
	BidPrice                    decimal.Decimal `json:"bid_price"`
	BidSize                     int64           `json:"bid_size"`
	LastTradePrice              decimal.Decimal `json:"last_trade_price"`
	LastExtendedHoursTradePrice decimal.Decimal `json:"last_extended_hours_trade_price"`
	PreviousClose               decimal.Decimal `json:"previous_close"`
	AdjustedPreviousClose       decimal.Decimal `json:"adjusted_previous_close"`
	PreviousCloseDate           string          `json:"previous_close_date"`
	TradingHalted               bool            `json:"trading_halted"`
	HasTraded                   bool            `json:"has_traded"`
	UpdatedAt                   string          `json:"updated_at"`
	Instrument                  string          `json:"instrument"`
}

// QuotesResponse is the body of the quotes endpoint. Unknown symbols come
// back as null entries.
type QuotesResponse struct {
	Results []*Quote `json:"results"`
}
