package types

import "github.com/shopspring/decimal"

// Portfolio is the account-level valuation snapshot.
type Portfolio struct {
	URL                         string          `json:"url"`
	Account                     string          `json:"account"`
	StartDate                   string          `json:"start_date"`
	Equity                      decimal.Decimal `json:"equity"`
	ExtendedHoursEquity         decimal.Decimal `json:"extended_hours_equity"`
	MarketValue                 decimal.Decimal `json:"market_value"`
	ExtendedHoursMarketValue    decimal.Decimal `json:"extended_hours_market_value"`
	LastCoreEquity              decimal.Decimal `json:"last_core_equity"`
	LastCoreMarketValue         decimal.Decimal `json:"last_core_market_value"`
	EquityPreviousClose         decimal.Decimal `json:"equity_previous_close"`
	AdjustedEquityPreviousClose decimal.Decimal `json:"adjusted_equity_previous_close"`
	WithdrawableAmount          decimal.Decimal `json:"withdrawable_amount"`
	ExcessMargin                decimal.Decimal `json:"excess_margin"`
}

// MarginBalances is the margin_balances object nested in the account.
type MarginBalances struct {
	Cash                       decimal.Decimal `json:"cash"`
	CashAvailableForWithdrawal decimal.Decimal `json:"cash_available_for_withdrawal"`
	CashHeldForOrders          decimal.Decimal `json:"cash_held_for_orders"`
	UnallocatedMarginCash      decimal.Decimal `json:"unallocated_margin_cash"`
	UnclearedDeposits          decimal.Decimal `json:"uncleared_deposits"`
	UnsettledFunds             decimal.Decimal `json:"unsettled_funds"`
	MarginLimit                decimal.Decimal `json:"margin_limit"`
	DayTradeBuyingPower        decimal.Decimal `json:"day_trade_buying_power"`
	OvernightBuyingPower       decimal.Decimal `json:"overnight_buying_power"`
	DayTradesProtection        bool            `json:"day_trades_protection"`
	CreatedAt                  string          `json:"created_at"`
	UpdatedAt                  string          `json:"updated_at"`
}

// EquityHistorical is one sample of the portfolio historicals series.
type EquityHistorical struct {
	BeginsAt            string          `json:"begins_at"`
	OpenEquity          decimal.Decimal `json:"open_equity"`
	CloseEquity         decimal.Decimal `json:"close_equity"`
	AdjustedOpenEquity  decimal.Decimal `json:"adjusted_open_equity"`
	AdjustedCloseEquity decimal.Decimal `json:"adjusted_close_equity"`
	OpenMarketValue     decimal.Decimal `json:"open_market_value"`
	CloseMarketValue    decimal.Decimal `json:"close_market_value"`
	NetReturn           decimal.Decimal `json:"net_return"`
	Session             string          `json:"session"`
}
