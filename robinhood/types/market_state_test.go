package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const isoNoMillis = "2006-01-02T15:04:05Z07:00"

// marketDay builds an hours record around t: extended hours cover the whole
// day, regular hours run 09:30-16:00 in t's location.
func marketDay(t time.Time, open bool) map[string]string {
	y, m, d := t.Date()
	loc := t.Location()
	return map[string]string{
		KeyIsOpen:           boolString(open),
		KeyExtendedOpensAt:  time.Date(y, m, d, 0, 0, 0, 0, loc).Format(isoNoMillis),
		KeyOpensAt:          time.Date(y, m, d, 9, 30, 0, 0, loc).Format(isoNoMillis),
		KeyClosesAt:         time.Date(y, m, d, 16, 0, 0, 0, loc).Format(isoNoMillis),
		KeyExtendedClosesAt: time.Date(y, m, d, 23, 59, 0, 0, loc).Format(isoNoMillis),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestMarketState_NoData(t *testing.T) {
	ms := NewMarketState(map[string]string{})

	assert.False(t, ms.IsOpenNow())
	assert.False(t, ms.IsOpenThisDay())
	assert.False(t, ms.IsAfterHoursNow())
	_, ok := ms.ExtendedOpenTime()
	assert.False(t, ok)
	_, ok = ms.ExtendedCloseTime()
	assert.False(t, ok)
}

func TestMarketState_ClosedDayIgnoresTimes(t *testing.T) {
	ref := time.Date(2017, 3, 13, 12, 0, 0, 0, time.UTC)
	ms := NewMarketState(marketDay(ref, false))

	assert.False(t, ms.IsOpenThisDay())
	assert.False(t, ms.IsOpenAt(ref))
	assert.False(t, ms.IsAfterHoursAt(ref.Add(-5*time.Hour)))

	for name, fn := range map[string]func() (time.Time, bool){
		"open":           ms.OpenTime,
		"close":          ms.CloseTime,
		"extended open":  ms.ExtendedOpenTime,
		"extended close": ms.ExtendedCloseTime,
	} {
		_, ok := fn()
		assert.False(t, ok, name)
	}
}

func TestMarketState_OpenDay(t *testing.T) {
	now := time.Now()
	ms := NewMarketState(marketDay(now, true))

	assert.True(t, ms.IsOpenThisDay())
	_, ok := ms.ExtendedOpenTime()
	assert.True(t, ok)
	_, ok = ms.ExtendedCloseTime()
	assert.True(t, ok)

	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	assert.True(t, ms.IsOpenAt(noon))
	assert.False(t, ms.IsAfterHoursAt(noon))
}

func TestMarketState_Windows(t *testing.T) {
	ref := time.Date(2017, 3, 13, 0, 0, 0, 0, time.UTC)
	ms := NewMarketState(marketDay(ref, true))
	at := func(h, m int) time.Time { return ref.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name       string
		t          time.Time
		open       bool
		afterHours bool
	}{
		{"extended open boundary", at(0, 0), false, false},
		{"pre-market", at(8, 0), true, true},
		{"regular open boundary", at(9, 30), true, false},
		{"regular hours", at(12, 0), true, false},
		{"regular close boundary", at(16, 0), true, false},
		{"after-market", at(18, 0), true, true},
		{"extended close boundary", at(23, 59), false, false},
		{"next day", at(24, 30), false, false},
		{"previous day", at(-1, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, ms.IsOpenAt(tt.t))
			assert.Equal(t, tt.afterHours, ms.IsAfterHoursAt(tt.t))
		})
	}
}

func TestMarketState_AfterHoursNeedsAllTimes(t *testing.T) {
	ref := time.Date(2017, 3, 13, 0, 0, 0, 0, time.UTC)
	day := marketDay(ref, true)
	delete(day, KeyOpensAt)
	ms := NewMarketState(day)

	preMarket := ref.Add(8 * time.Hour)
	assert.True(t, ms.IsOpenAt(preMarket))
	assert.False(t, ms.IsAfterHoursAt(preMarket))
}

func TestMarketState_ParsesOffsets(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2017-03-13T13:30:00+00:00", time.Date(2017, 3, 13, 13, 30, 0, 0, time.UTC)},
		{"2017-03-13T13:30:00Z", time.Date(2017, 3, 13, 13, 30, 0, 0, time.UTC)},
		{"2017-03-13T09:30:00-0400", time.Date(2017, 3, 13, 13, 30, 0, 0, time.UTC)},
		{"2017-03-13T09:30:00-04", time.Date(2017, 3, 13, 13, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ms := NewMarketState(map[string]string{KeyIsOpen: "true", KeyOpensAt: tt.value})
			got, ok := ms.OpenTime()
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	ms := NewMarketState(map[string]string{KeyIsOpen: "true", KeyOpensAt: "13:30"})
	_, ok := ms.OpenTime()
	assert.False(t, ok)
}

func TestMarketState_UnmarshalJSON(t *testing.T) {
	body := `{
		"closes_at": "2017-03-13T20:00:00+00:00",
		"extended_opens_at": "2017-03-13T13:00:00+00:00",
		"next_open_hours": "https://api.robinhood.com/markets/XNAS/hours/2017-03-14/",
		"previous_open_hours": "https://api.robinhood.com/markets/XNAS/hours/2017-03-10/",
		"is_open": true,
		"extended_closes_at": "2017-03-13T22:00:00+00:00",
		"date": "2017-03-13",
		"opens_at": null
	}`

	var ms MarketState
	require.NoError(t, json.Unmarshal([]byte(body), &ms))

	assert.True(t, ms.IsOpenThisDay())
	assert.Equal(t, "2017-03-13", ms.Date())
	assert.Equal(t, "https://api.robinhood.com/markets/XNAS/hours/2017-03-14/", ms.NextOpenHoursURL())
	assert.Equal(t, "https://api.robinhood.com/markets/XNAS/hours/2017-03-10/", ms.PreviousOpenHoursURL())
	_, ok := ms.Field(KeyOpensAt)
	assert.False(t, ok)

	closeAt, ok := ms.CloseTime()
	require.True(t, ok)
	assert.Equal(t, 20, closeAt.UTC().Hour())

	assert.True(t, ms.IsOpenAt(time.Date(2017, 3, 13, 15, 0, 0, 0, time.UTC)))
}

func TestMarketState_IsOpenParsing(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "True": true, "TRUE": true, "1": false, "t": false, "false": false, "yes": false, "": false} {
		ms := NewMarketState(map[string]string{KeyIsOpen: value})
		assert.Equal(t, want, ms.IsOpenThisDay(), "is_open=%q", value)
	}
}
