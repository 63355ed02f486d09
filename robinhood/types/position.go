package types

import "github.com/shopspring/decimal"

// Position is a holding in one instrument. A zero quantity means the
// instrument is no longer held.
type Position struct {
	URL                string          `json:"url"`
	Account            string          `json:"account"`
	Instrument         string          `json:"instrument"`
	Quantity           decimal.Decimal `json:"quantity"`
	AverageBuyPrice    decimal.Decimal `json:"average_buy_price"`
	SharesHeldForSells decimal.Decimal `json:"shares_held_for_sells"`
	UpdatedAt          string          `json:"updated_at"`
}

// Held reports whether the position carries a non-zero quantity.
func (p *Position) Held() bool {
	return !p.Quantity.IsZero()
}

// CostBasis is quantity times average buy price.
func (p *Position) CostBasis() decimal.Decimal {
	return p.Quantity.Mul(p.AverageBuyPrice)
}
