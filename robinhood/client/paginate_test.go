package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pageOne   = testBase + "things/"
	pageTwo   = testBase + "things/?cursor=2"
	pageThree = testBase + "things/?cursor=3"
)

func newTestCollector(mock *MockTransport, maxPages int) (*Collector, *sleepRecorder) {
	rec := &sleepRecorder{}
	return NewCollector(mock, CollectorOptions{Sleep: rec.sleep, MaxPages: maxPages, Logger: quietLogger()}), rec
}

func pageURLs(pages []Page) []string {
	urls := make([]string, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, p.URL)
	}
	return urls
}

func TestCollectFollowsCursor(t *testing.T) {
	mock := NewMockTransport().
		OnJSON(http.MethodGet, pageOne, `{"next":"`+pageTwo+`","results":[{"n":1},{"n":2}]}`).
		OnJSON(http.MethodGet, pageTwo, `{"next":"`+pageThree+`","results":[{"n":3}]}`).
		OnJSON(http.MethodGet, pageThree, `{"next":null,"results":[{"n":4}]}`)
	col, rec := newTestCollector(mock, 0)

	pages := col.Collect(context.Background(), pageOne, nil, nil)

	require.Len(t, pages, 3)
	assert.Equal(t, []string{pageOne, pageTwo, pageThree}, pageURLs(pages))
	assert.Len(t, pages[0].Results, 2)
	assert.JSONEq(t, `{"n":1}`, string(pages[0].Results[0]))
	assert.JSONEq(t, `{"n":2}`, string(pages[0].Results[1]))
	assert.Empty(t, rec.slept)
	assert.Equal(t, 3, mock.Total())
}

func TestCollectHonoursRetryAfter(t *testing.T) {
	throttled := MockReply{
		Status: http.StatusTooManyRequests,
		Header: http.Header{"Retry-After": []string{"2"}},
		Body:   `{"detail":"Request was throttled."}`,
	}
	mock := NewMockTransport().
		OnJSON(http.MethodGet, pageOne, `{"next":"`+pageTwo+`","results":[{"n":1}]}`).
		On(http.MethodGet, pageTwo, throttled, MockReply{Status: http.StatusOK, Body: `{"next":null,"results":[{"n":2}]}`})
	col, rec := newTestCollector(mock, 0)

	pages := col.Collect(context.Background(), pageOne, nil, nil)

	require.Len(t, pages, 2)
	assert.Equal(t, []string{pageOne, pageTwo}, pageURLs(pages))
	assert.Equal(t, []time.Duration{2 * time.Second}, rec.slept)
	assert.Equal(t, 2, mock.Calls(http.MethodGet, pageTwo))
}

func TestCollectIgnoresInvalidRetryAfter(t *testing.T) {
	for _, value := range []string{"soon", "-3", "0", ""} {
		t.Run(value, func(t *testing.T) {
			mock := NewMockTransport().On(http.MethodGet, pageOne, MockReply{
				Status: http.StatusOK,
				Header: http.Header{"Retry-After": []string{value}},
				Body:   `{"next":null,"results":[]}`,
			})
			col, rec := newTestCollector(mock, 0)

			pages := col.Collect(context.Background(), pageOne, nil, nil)
			assert.Len(t, pages, 1)
			assert.Empty(t, rec.slept)
		})
	}
}

func TestCollectSkipsIdenticalPages(t *testing.T) {
	first := `{"next":"` + pageTwo + `","results":[{"n":1}]}`
	mock := NewMockTransport().
		OnJSON(http.MethodGet, pageOne, first).
		On(http.MethodGet, pageTwo,
			MockReply{Status: http.StatusOK, Body: `{"next": "` + pageTwo + `", "results": [ {"n":1} ]}`},
			MockReply{Status: http.StatusOK, Body: `{"next":null,"results":[{"n":2}]}`})
	col, _ := newTestCollector(mock, 0)

	pages := col.Collect(context.Background(), pageOne, nil, nil)

	require.Len(t, pages, 2)
	assert.JSONEq(t, `{"n":1}`, string(pages[0].Results[0]))
	assert.JSONEq(t, `{"n":2}`, string(pages[1].Results[0]))
	assert.Equal(t, 2, mock.Calls(http.MethodGet, pageTwo))
}

func TestCollectTruncates(t *testing.T) {
	tests := []struct {
		name  string
		reply MockReply
	}{
		{"transport error", MockReply{Err: errors.New("connection reset")}},
		{"server error", MockReply{Status: http.StatusInternalServerError, Body: `{"detail":"oops"}`}},
		{"not json", MockReply{Status: http.StatusOK, Body: `<html>gateway</html>`}},
		{"empty body", MockReply{Status: http.StatusOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport().
				OnJSON(http.MethodGet, pageOne, `{"next":"`+pageTwo+`","results":[{"n":1}]}`).
				On(http.MethodGet, pageTwo, tt.reply)
			col, _ := newTestCollector(mock, 0)

			pages := col.Collect(context.Background(), pageOne, nil, nil)
			require.Len(t, pages, 1)
			assert.Equal(t, pageOne, pages[0].URL)
		})
	}
}

func TestCollectStopsOnNullCursor(t *testing.T) {
	for _, next := range []string{`null`, `"null"`, `"NULL"`, `""`} {
		t.Run(next, func(t *testing.T) {
			mock := NewMockTransport().
				OnJSON(http.MethodGet, pageOne, `{"next":`+next+`,"results":[{"n":1}]}`)
			col, _ := newTestCollector(mock, 0)

			pages := col.Collect(context.Background(), pageOne, nil, nil)
			assert.Len(t, pages, 1)
			assert.Equal(t, 1, mock.Total())
		})
	}

	col, _ := newTestCollector(NewMockTransport(), 0)
	assert.Empty(t, col.Collect(context.Background(), "null", nil, nil))
}

func TestCollectSendsParamsOnFirstPageOnly(t *testing.T) {
	throttled := MockReply{Status: http.StatusTooManyRequests, Header: http.Header{"Retry-After": []string{"1"}}}
	mock := NewMockTransport().
		On(http.MethodGet, pageOne, throttled, MockReply{Status: http.StatusOK, Body: `{"next":"` + pageTwo + `","results":[]}`}).
		OnJSON(http.MethodGet, pageTwo, `{"next":null,"results":[]}`)
	col, _ := newTestCollector(mock, 0)

	params := map[string]string{"symbol": "AAPL"}
	col.Collect(context.Background(), pageOne, params, map[string]string{"Accept": "*/*"})

	require.Len(t, mock.Requests, 3)
	assert.Equal(t, params, mock.Requests[0].Params)
	assert.Equal(t, params, mock.Requests[1].Params)
	assert.Nil(t, mock.Requests[2].Params)
	assert.Equal(t, "*/*", mock.Requests[2].Headers["Accept"])
}

// Two distinct pages linking to each other never terminate on their own;
// only the page cap ends the walk.
func TestCollectCapBreaksCycle(t *testing.T) {
	mock := NewMockTransport().
		OnJSON(http.MethodGet, pageOne, `{"next":"`+pageTwo+`","results":[{"n":1}]}`).
		OnJSON(http.MethodGet, pageTwo, `{"next":"`+pageOne+`","results":[{"n":2}]}`)
	col, _ := newTestCollector(mock, 5)

	pages := col.Collect(context.Background(), pageOne, nil, nil)

	assert.Len(t, pages, 2)
	assert.Equal(t, 5, mock.Total())
}

func TestCollectItems(t *testing.T) {
	type thing struct {
		N int `json:"n"`
	}
	pages := []Page{
		{Results: rawItems(`{"n":1}`, `{"n":"bad"}`, `null`, `{"n":2}`)},
		{Results: rawItems(`{"n":1}`, `{"n":3}`)},
	}

	all := collectItems[thing](quietLogger(), pages, false)
	require.Len(t, all, 4)
	assert.Equal(t, []int{1, 2, 1, 3}, []int{all[0].N, all[1].N, all[2].N, all[3].N})

	unique := collectItems[thing](quietLogger(), pages, true)
	require.Len(t, unique, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{unique[0].N, unique[1].N, unique[2].N})
}
