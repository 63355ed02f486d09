package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEndpoints(t *testing.T) {
	e := NewEndpoints("https://example.test")
	assert.Equal(t, "https://example.test/", e.Base())

	u, ok := e.Lookup(EndpointMarkets)
	assert.True(t, ok)
	assert.Equal(t, "https://example.test/markets/", u)

	_, ok = e.Lookup(EndpointPositions)
	assert.False(t, ok)

	assert.Equal(t, "https://example.test/portfolios/historicals/ABC", e.HistoricalsURL("ABC"))
	assert.Equal(t, DefaultBaseURL, NewEndpoints("").Base())
}

func TestEndpointTableIsComplete(t *testing.T) {
	e := NewEndpoints("")
	for ep := EndpointLogin; ep < EndpointPositions; ep++ {
		u, ok := e.Lookup(ep)
		assert.True(t, ok, ep.String())
		assert.NotEmpty(t, u, ep.String())
		assert.False(t, ep.AccountScoped(), ep.String())
	}
	for _, ep := range []Endpoint{EndpointPositions, EndpointPortfolio, EndpointPortfolioHistoricals, EndpointAccount} {
		assert.True(t, ep.AccountScoped(), ep.String())
		assert.NotEqual(t, "unknown", ep.String())
	}
	assert.Equal(t, "unknown", Endpoint(999).String())
}
