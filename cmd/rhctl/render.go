package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cheddar/hoodbot/robinhood/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func renderPositions(positions []*types.Position) string {
	if len(positions) == 0 {
		return warnStyle.Render("no positions held")
	}
	t := newTable("instrument", "quantity", "avg buy", "cost basis")
	for _, p := range positions {
		t.Row(p.Instrument, p.Quantity.String(), p.AverageBuyPrice.StringFixed(2), p.CostBasis().StringFixed(2))
	}
	return titleStyle.Render("Positions") + "\n" + t.String()
}

func renderQuotes(quotes []*types.Quote) string {
	if len(quotes) == 0 {
		return warnStyle.Render("no quotes")
	}
	t := newTable("symbol", "bid", "ask", "last", "prev close", "halted")
	for _, q := range quotes {
		t.Row(q.Symbol,
			fmt.Sprintf("%s x%d", q.BidPrice.StringFixed(2), q.BidSize),
			fmt.Sprintf("%s x%d", q.AskPrice.StringFixed(2), q.AskSize),
			q.LastTradePrice.StringFixed(2),
			q.PreviousClose.StringFixed(2),
			fmt.Sprint(q.TradingHalted))
	}
	return titleStyle.Render("Quotes") + "\n" + t.String()
}

func renderOrders(orders []*types.Order) string {
	if len(orders) == 0 {
		return warnStyle.Render("no orders")
	}
	t := newTable("id", "state", "side", "quantity", "price", "avg fill", "updated")
	for _, o := range orders {
		t.Row(o.ID, o.State, string(o.Side), o.Quantity.String(), o.Price.StringFixed(2), o.AveragePrice.StringFixed(2), o.UpdatedAt)
	}
	return titleStyle.Render("Orders") + "\n" + t.String()
}

func renderInstrument(inst *types.Instrument) string {
	t := newTable("field", "value").
		Row("symbol", inst.Symbol).
		Row("name", inst.Name).
		Row("tradeable", fmt.Sprint(inst.Tradeable)).
		Row("day trade ratio", inst.DayTradeRatio.String()).
		Row("min tick", inst.MinTickSize.String()).
		Row("url", inst.URL)
	return titleStyle.Render(inst.Symbol) + "\n" + t.String()
}

func renderPortfolio(p *types.Portfolio) string {
	t := newTable("field", "value").
		Row("equity", p.Equity.StringFixed(2)).
		Row("extended hours equity", p.ExtendedHoursEquity.StringFixed(2)).
		Row("market value", p.MarketValue.StringFixed(2)).
		Row("previous close", p.EquityPreviousClose.StringFixed(2)).
		Row("withdrawable", p.WithdrawableAmount.StringFixed(2))
	return titleStyle.Render("Portfolio") + "\n" + t.String()
}

func renderMargin(mb *types.MarginBalances) string {
	t := newTable("field", "value").
		Row("cash", mb.Cash.StringFixed(2)).
		Row("held for orders", mb.CashHeldForOrders.StringFixed(2)).
		Row("unsettled", mb.UnsettledFunds.StringFixed(2)).
		Row("day trade buying power", mb.DayTradeBuyingPower.StringFixed(2)).
		Row("overnight buying power", mb.OvernightBuyingPower.StringFixed(2))
	return titleStyle.Render("Margin") + "\n" + t.String()
}

func renderHistory(values []*types.EquityHistorical) string {
	if len(values) == 0 {
		return warnStyle.Render("no history")
	}
	t := newTable("begins at", "open", "close", "session")
	for _, v := range values {
		t.Row(v.BeginsAt, v.OpenEquity.StringFixed(2), v.CloseEquity.StringFixed(2), v.Session)
	}
	return titleStyle.Render("Equity") + "\n" + t.String()
}

// marketStatus summarises a schedule at now.
func marketStatus(state *types.MarketState, now time.Time) string {
	switch {
	case !state.IsOpenThisDay():
		return "closed today"
	case state.IsAfterHoursAt(now):
		return "extended hours"
	case state.IsOpenAt(now):
		return "open"
	default:
		return "closed"
	}
}

func renderMarket(state *types.MarketState, now time.Time) string {
	var b strings.Builder
	status := marketStatus(state, now)
	style := warnStyle
	if status == "open" || status == "extended hours" {
		style = okStyle
	}
	b.WriteString(titleStyle.Render("Market " + state.Date()))
	b.WriteString(" ")
	b.WriteString(style.Render(status))

	if !state.IsOpenThisDay() {
		return b.String()
	}
	t := newTable("window", "opens", "closes")
	row := func(name string, openFn, closeFn func() (time.Time, bool)) {
		o, ook := openFn()
		c, cok := closeFn()
		t.Row(name, clock(o, ook), clock(c, cok))
	}
	row("regular", state.OpenTime, state.CloseTime)
	row("extended", state.ExtendedOpenTime, state.ExtendedCloseTime)
	b.WriteString("\n")
	b.WriteString(t.String())
	return b.String()
}

func clock(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return t.Local().Format("15:04 MST")
}
