package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureEstablishedIsIdempotent(t *testing.T) {
	mock := withLogin(NewMockTransport())
	c, _ := newTestClient(t, mock)
	s := c.Session()

	require.False(t, s.Established())
	require.NoError(t, s.EnsureEstablished(context.Background()))
	require.NoError(t, s.EnsureEstablished(context.Background()))

	assert.True(t, s.Established())
	assert.Equal(t, 1, mock.Calls(http.MethodPost, testLogin))
	assert.Equal(t, 1, mock.Calls(http.MethodGet, testAccounts))
	assert.Equal(t, "Token abc123", s.Headers()["Authorization"])
	assert.Equal(t, "5RY00000", s.AccountNumber())
}

func TestEnsureEstablishedSendsCredentialsAndToken(t *testing.T) {
	mock := withLogin(NewMockTransport())
	c, _ := newTestClient(t, mock)
	require.NoError(t, c.Login(context.Background()))

	require.Len(t, mock.Requests, 2)
	login := mock.Requests[0]
	assert.Equal(t, map[string]string{"username": "alice", "password": "s3cret"}, login.Params)
	assert.NotContains(t, login.Headers, "Authorization")
	assert.Equal(t, DefaultAPIVersion, login.Headers["X-Robinhood-API-Version"])

	accounts := mock.Requests[1]
	assert.Equal(t, "Token abc123", accounts.Headers["Authorization"])
}

func TestSessionURLs(t *testing.T) {
	mock := withLogin(NewMockTransport())
	c, _ := newTestClient(t, mock)
	s := c.Session()

	u, err := s.URL(EndpointQuotes)
	require.NoError(t, err)
	assert.Equal(t, testQuotes, u)

	_, err = s.URL(EndpointPositions)
	assert.True(t, errors.Is(err, ErrAuthentication))

	require.NoError(t, s.EnsureEstablished(context.Background()))

	cases := map[Endpoint]string{
		EndpointPositions:            testPositions,
		EndpointPortfolio:            testPortfolio,
		EndpointAccount:              testAccount,
		EndpointPortfolioHistoricals: testHistoricals,
	}
	for e, want := range cases {
		got, err := s.URL(e)
		require.NoError(t, err, e.String())
		assert.Equal(t, want, got, e.String())
	}
}

func TestEnsureEstablishedFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *MockTransport)
	}{
		{
			name: "login transport error",
			setup: func(m *MockTransport) {
				m.On(http.MethodPost, testLogin, MockReply{Err: errors.New("connection refused")})
			},
		},
		{
			name: "bad credentials",
			setup: func(m *MockTransport) {
				m.On(http.MethodPost, testLogin, MockReply{
					Status: http.StatusBadRequest,
					Body:   `{"non_field_errors":["Unable to log in with provided credentials."]}`,
				})
			},
		},
		{
			name: "no token",
			setup: func(m *MockTransport) {
				m.OnJSON(http.MethodPost, testLogin, `{"mfa_required":true}`)
			},
		},
		{
			name: "login body not json",
			setup: func(m *MockTransport) {
				m.OnJSON(http.MethodPost, testLogin, `<html>`)
			},
		},
		{
			name: "no accounts",
			setup: func(m *MockTransport) {
				m.OnJSON(http.MethodPost, testLogin, `{"token":"abc123"}`).
					OnJSON(http.MethodGet, testAccounts, `{"results":[]}`)
			},
		},
		{
			name: "account without positions",
			setup: func(m *MockTransport) {
				m.OnJSON(http.MethodPost, testLogin, `{"token":"abc123"}`).
					OnJSON(http.MethodGet, testAccounts, `{"results":[{"url":"u","portfolio":"p","account_number":"1"}]}`)
			},
		},
		{
			name: "accounts transport error",
			setup: func(m *MockTransport) {
				m.OnJSON(http.MethodPost, testLogin, `{"token":"abc123"}`).
					On(http.MethodGet, testAccounts, MockReply{Err: errors.New("reset by peer")})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport()
			tt.setup(mock)
			c, _ := newTestClient(t, mock)

			err := c.Session().EnsureEstablished(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAuthentication))
			assert.Contains(t, err.Error(), "login failed")
			assert.False(t, c.Session().Established())
		})
	}
}

func TestEnsureEstablishedRetriesAfterFailure(t *testing.T) {
	mock := NewMockTransport().
		On(http.MethodPost, testLogin,
			MockReply{Err: errors.New("timeout")},
			MockReply{Status: http.StatusOK, Body: `{"token":"abc123"}`}).
		OnJSON(http.MethodGet, testAccounts, accountsBody)
	c, _ := newTestClient(t, mock)

	require.Error(t, c.Login(context.Background()))
	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, 2, mock.Calls(http.MethodPost, testLogin))
}

func TestAuthenticatedCallFailsWithoutLogin(t *testing.T) {
	mock := NewMockTransport().
		On(http.MethodPost, testLogin, MockReply{Status: http.StatusUnauthorized, Body: `{"detail":"nope"}`})
	c, _ := newTestClient(t, mock)

	_, err := c.GetPositions(context.Background())
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.Equal(t, 0, mock.Calls(http.MethodGet, testPositions))
}
