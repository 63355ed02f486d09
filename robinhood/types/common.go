package types

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType is the pricing type of an order.
type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)

// TimeInForce controls how long an order stays working.
type TimeInForce string

const (
	TimeInForceGFD TimeInForce = "gfd" // good for day
	TimeInForceGTC TimeInForce = "gtc" // good till cancelled
)

// Trigger controls when an order becomes active.
type Trigger string

const (
	TriggerImmediate Trigger = "immediate"
	TriggerStop      Trigger = "stop"
)

// Span is the window covered by a portfolio historicals query.
type Span string

const (
	SpanDay      Span = "day"
	SpanWeek     Span = "week"
	SpanYear     Span = "year"
	SpanFiveYear Span = "5year"
	SpanAll      Span = "all"
)

// Interval is the sampling step of a portfolio historicals query.
type Interval string

const (
	IntervalFiveMinute Interval = "5minute"
	IntervalTenMinute  Interval = "10minute"
	IntervalDay        Interval = "day"
	IntervalWeek       Interval = "week"
)

// Bounds selects which trading session a historicals query covers.
type Bounds string

const (
	BoundsRegular  Bounds = "regular"
	BoundsExtended Bounds = "extended"
	BoundsTrading  Bounds = "trading"
)
