package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Keys of a market hours record.
const (
	KeyIsOpen            = "is_open"
	KeyOpensAt           = "opens_at"
	KeyClosesAt          = "closes_at"
	KeyExtendedOpensAt   = "extended_opens_at"
	KeyExtendedClosesAt  = "extended_closes_at"
	KeyDate              = "date"
	KeyNextOpenHours     = "next_open_hours"
	KeyPreviousOpenHours = "previous_open_hours"
)

// Market hours timestamps carry a numeric offset (or Z) and no fraction.
var marketTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
}

// MarketState answers open / closed / extended-hours questions for one
// trading day. It wraps the day's hours record, e.g.
//
//	{
//	  "date": "2017-03-13",
//	  "is_open": true,
//	  "opens_at": "2017-03-13T13:30:00+00:00",
//	  "closes_at": "2017-03-13T20:00:00+00:00",
//	  "extended_opens_at": "2017-03-13T13:00:00+00:00",
//	  "extended_closes_at": "2017-03-13T22:00:00+00:00"
//	}
//
// A MarketState is never mutated after construction.
type MarketState struct {
	day map[string]string
}

// NewMarketState copies day into a new MarketState.
func NewMarketState(day map[string]string) MarketState {
	cp := make(map[string]string, len(day))
	for k, v := range day {
		cp[k] = v
	}
	return MarketState{day: cp}
}

// UnmarshalJSON flattens the hours object into strings. Booleans and
// numbers keep their literal text, nulls and nested values are dropped.
func (m *MarketState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day := make(map[string]string, len(raw))
	for k, v := range raw {
		lit := strings.TrimSpace(string(v))
		if lit == "null" || lit == "" || lit[0] == '{' || lit[0] == '[' {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			day[k] = s
			continue
		}
		day[k] = lit
	}
	m.day = day
	return nil
}

// Field returns the raw value stored under key.
func (m MarketState) Field(key string) (string, bool) {
	v, ok := m.day[key]
	return v, ok
}

// Date is the calendar date of the record (yyyy-mm-dd).
func (m MarketState) Date() string {
	return m.day[KeyDate]
}

// NextOpenHoursURL links to the hours record of the next trading day.
func (m MarketState) NextOpenHoursURL() string {
	return m.day[KeyNextOpenHours]
}

// PreviousOpenHoursURL links to the hours record of the previous trading day.
func (m MarketState) PreviousOpenHoursURL() string {
	return m.day[KeyPreviousOpenHours]
}

// IsOpenThisDay reports whether the market trades at all on this day.
func (m MarketState) IsOpenThisDay() bool {
	v, ok := m.day[KeyIsOpen]
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

func (m MarketState) timeField(key string) (time.Time, bool) {
	if !m.IsOpenThisDay() {
		return time.Time{}, false
	}
	v, ok := m.day[key]
	if !ok {
		return time.Time{}, false
	}
	return parseMarketTime(v)
}

func parseMarketTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range marketTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OpenTime is the start of regular hours.
func (m MarketState) OpenTime() (time.Time, bool) {
	return m.timeField(KeyOpensAt)
}

// CloseTime is the end of regular hours.
func (m MarketState) CloseTime() (time.Time, bool) {
	return m.timeField(KeyClosesAt)
}

// ExtendedOpenTime is the start of the pre-market session.
func (m MarketState) ExtendedOpenTime() (time.Time, bool) {
	return m.timeField(KeyExtendedOpensAt)
}

// ExtendedCloseTime is the end of the after-market session.
func (m MarketState) ExtendedCloseTime() (time.Time, bool) {
	return m.timeField(KeyExtendedClosesAt)
}

// IsOpenNow reports whether the current instant is inside extended hours.
func (m MarketState) IsOpenNow() bool {
	return m.IsOpenAt(time.Now())
}

// IsOpenAt reports whether t lies strictly between the extended open and
// extended close. Extended hours count as open here.
func (m MarketState) IsOpenAt(t time.Time) bool {
	extOpen, ok := m.ExtendedOpenTime()
	if !ok {
		return false
	}
	extClose, ok := m.ExtendedCloseTime()
	if !ok {
		return false
	}
	return t.After(extOpen) && t.Before(extClose)
}

// IsAfterHoursNow reports whether the current instant is pre-market or
// after-market.
func (m MarketState) IsAfterHoursNow() bool {
	return m.IsAfterHoursAt(time.Now())
}

// IsAfterHoursAt reports whether t lies in (extended open, open) or
// (close, extended close). All four timestamps must be present; boundary
// instants are neither open nor after hours.
func (m MarketState) IsAfterHoursAt(t time.Time) bool {
	extOpen, ok1 := m.ExtendedOpenTime()
	extClose, ok2 := m.ExtendedCloseTime()
	open, ok3 := m.OpenTime()
	closeAt, ok4 := m.CloseTime()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	preMarket := t.After(extOpen) && t.Before(open)
	afterMarket := t.After(closeAt) && t.Before(extClose)
	return preMarket || afterMarket
}
