package types

import "github.com/shopspring/decimal"

// Instrument is a tradeable security. URL is its stable identity.
type Instrument struct {
	ID              string          `json:"id"`
	URL             string          `json:"url"`
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	DayTradeRatio   decimal.Decimal `json:"day_trade_ratio"`
	Tradeable       bool            `json:"tradeable"`
	MinTickSize     decimal.Decimal `json:"min_tick_size"`
	State           string          `json:"state"`
	Type            string          `json:"type"`
	BloombergUnique string          `json:"bloomberg_unique"`
	ListDate        string          `json:"list_date"`
	Quote           string          `json:"quote"`
	Market          string          `json:"market"`
}

// InstrumentsResponse is one page of the instruments endpoint.
type InstrumentsResponse struct {
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []Instrument `json:"results"`
}
