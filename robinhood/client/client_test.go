package client

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	testBase        = "https://rh.test/"
	testLogin       = testBase + "api-token-auth/"
	testAccounts    = testBase + "accounts/"
	testPositions   = testBase + "positions/"
	testPortfolio   = testBase + "portfolios/5RY00000/"
	testAccount     = testBase + "accounts/5RY00000/"
	testHistoricals = testBase + "portfolios/historicals/5RY00000"
	testInstruments = testBase + "instruments/"
	testOrders      = testBase + "orders/"
	testQuotes      = testBase + "quotes/"

	accountsBody = `{"next":null,"previous":null,"results":[{
		"url":"` + testAccount + `",
		"positions":"` + testPositions + `",
		"portfolio":"` + testPortfolio + `",
		"account_number":"5RY00000"}]}`
)

// sleepRecorder replaces time.Sleep in tests.
type sleepRecorder struct {
	slept []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.slept = append(s.slept, d)
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestClient(t *testing.T, mock *MockTransport) (*Client, *sleepRecorder) {
	t.Helper()
	rec := &sleepRecorder{}
	cfg := DefaultClientConfig()
	cfg.BaseURL = testBase
	cfg.Transport = mock
	cfg.Sleep = rec.sleep
	cfg.Logger = quietLogger()
	return NewClientWithConfig(Credentials{Username: "alice", Password: "s3cret"}, cfg), rec
}

// withLogin scripts a successful login and account bootstrap.
func withLogin(mock *MockTransport) *MockTransport {
	return mock.
		OnJSON(http.MethodPost, testLogin, `{"token":"abc123"}`).
		OnJSON(http.MethodGet, testAccounts, accountsBody)
}

func rawItems(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		out = append(out, json.RawMessage(it))
	}
	return out
}
