package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/cheddar/hoodbot/robinhood/client"
	"github.com/cheddar/hoodbot/robinhood/types"
)

type command struct {
	name  string
	usage string
	auth  bool
	run   func(ctx context.Context, c *client.Client, args []string, out io.Writer) error
}

var commands = []command{
	{name: "login", usage: "log in and print the account number", auth: true, run: runLogin},
	{name: "positions", usage: "list held positions", auth: true, run: runPositions},
	{name: "portfolio", usage: "show the portfolio", auth: true, run: runPortfolio},
	{name: "margin", usage: "show margin balances", auth: true, run: runMargin},
	{name: "history", usage: "[-span day] [-interval 5minute] [-bounds regular] equity history", auth: true, run: runHistory},
	{name: "orders", usage: "[-since 24h|2006-01-02] orders updated since", auth: true, run: runOrders},
	{name: "order", usage: "<url> show one order", auth: true, run: runOrder},
	{name: "buy", usage: "<symbol> <shares> <limit> place a limit buy", auth: true, run: runPlace(types.SideBuy)},
	{name: "sell", usage: "<symbol> <shares> <limit> place a limit sell", auth: true, run: runPlace(types.SideSell)},
	{name: "quote", usage: "<symbol>... show quotes", run: runQuotes},
	{name: "instrument", usage: "<symbol> show an instrument", run: runInstrument},
	{name: "instruments", usage: "count every listed instrument", run: runInstruments},
	{name: "market", usage: "[-date 2006-01-02] show market hours", run: runMarket},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func runLogin(ctx context.Context, c *client.Client, _ []string, out io.Writer) error {
	if err := c.Login(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render("logged in, account "+c.Session().AccountNumber()))
	return nil
}

func runPositions(ctx context.Context, c *client.Client, _ []string, out io.Writer) error {
	positions, err := c.GetPositions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderPositions(positions))
	return nil
}

func runPortfolio(ctx context.Context, c *client.Client, _ []string, out io.Writer) error {
	p, err := c.GetPortfolio(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderPortfolio(p))
	return nil
}

func runMargin(ctx context.Context, c *client.Client, _ []string, out io.Writer) error {
	mb, err := c.GetMarginBalances(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderMargin(mb))
	return nil
}

func runHistory(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	span := fs.String("span", string(types.SpanDay), "day, week, year, 5year or all")
	interval := fs.String("interval", string(types.IntervalFiveMinute), "5minute, 10minute, day or week")
	bounds := fs.String("bounds", string(types.BoundsRegular), "regular, extended or trading")
	if err := fs.Parse(args); err != nil {
		return err
	}

	values, err := c.GetHistoricalValues(ctx, types.Span(*span), types.Interval(*interval), types.Bounds(*bounds))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderHistory(values))
	return nil
}

func runOrders(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	sinceFlag := fs.String("since", "24h", "duration back from now, or a date")
	if err := fs.Parse(args); err != nil {
		return err
	}
	since, err := parseSince(*sinceFlag, time.Now())
	if err != nil {
		return err
	}

	orders, err := c.GetOrdersAfterDate(ctx, since)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderOrders(orders))
	return nil
}

func runOrder(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: order <url>")
	}
	order, err := c.GetOrderFromURL(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderOrders([]*types.Order{order}))
	return nil
}

func runPlace(side types.Side) func(context.Context, *client.Client, []string, io.Writer) error {
	return func(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
		symbol, shares, limit, err := parseOrderArgs(args)
		if err != nil {
			return err
		}
		order, err := c.PlaceOrder(ctx, symbol, shares, side, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("order %s %s", order.ID, order.State)))
		return nil
	}
}

func runQuotes(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: quote <symbol>...")
	}
	symbols := make([]string, 0, len(args))
	for _, a := range args {
		symbols = append(symbols, strings.ToUpper(a))
	}
	quotes, err := c.GetQuotes(ctx, symbols)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderQuotes(quotes))
	return nil
}

func runInstrument(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: instrument <symbol>")
	}
	inst, err := c.GetInstrumentForSymbol(ctx, strings.ToUpper(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderInstrument(inst))
	return nil
}

func runInstruments(ctx context.Context, c *client.Client, _ []string, out io.Writer) error {
	instruments := c.GetAllInstruments(ctx)
	tradeable := 0
	for _, inst := range instruments {
		if inst.Tradeable {
			tradeable++
		}
	}
	fmt.Fprintf(out, "%s %d instruments, %d tradeable\n", titleStyle.Render("instruments"), len(instruments), tradeable)
	return nil
}

func runMarket(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("market", flag.ContinueOnError)
	dateFlag := fs.String("date", "", "calendar day, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		state *types.MarketState
		err   error
	)
	if *dateFlag == "" {
		state, err = c.GetMarketStateToday(ctx)
	} else {
		day, perr := time.ParseInLocation("2006-01-02", *dateFlag, time.Local)
		if perr != nil {
			return errors.Wrap(perr, "date")
		}
		state, err = c.GetMarketStateForDate(ctx, day)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderMarket(state, time.Now()))
	return nil
}

// parseSince accepts a Go duration counted back from now or a date.
func parseSince(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return now.Add(-d), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, errors.Errorf("cannot parse -since %q", v)
}

func parseOrderArgs(args []string) (string, int, decimal.Decimal, error) {
	if len(args) != 3 {
		return "", 0, decimal.Zero, errors.New("usage: buy|sell <symbol> <shares> <limit>")
	}
	shares, err := strconv.Atoi(args[1])
	if err != nil || shares <= 0 {
		return "", 0, decimal.Zero, errors.Errorf("shares must be a positive integer, got %q", args[1])
	}
	limit, err := decimal.NewFromString(args[2])
	if err != nil || !limit.IsPositive() {
		return "", 0, decimal.Zero, errors.Errorf("limit must be a positive price, got %q", args[2])
	}
	return strings.ToUpper(args[0]), shares, limit, nil
}
