package client

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Credentials are the login username and password.
type Credentials struct {
	Username string
	Password string
}

// Default header values sent with every request.
const (
	DefaultAPIVersion = "1.70.0"
	DefaultUserAgent  = "Robinhood/823 (iPhone; iOS 7.1.2; Scale/2.00)"
)

// DefaultHeaders returns the static request headers. Accept-Encoding is left
// to net/http so compressed bodies are decoded transparently.
func DefaultHeaders(apiVersion, userAgent string) map[string]string {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{
		"Accept":                  "*/*",
		"Accept-Language":         "en;q=1, fr;q=0.9, de;q=0.8, ja;q=0.7, nl;q=0.6, it;q=0.5",
		"X-Robinhood-API-Version": apiVersion,
		"Connection":              "keep-alive",
		"User-Agent":              userAgent,
	}
}

// accountEndpoints are the URLs discovered from the accounts list.
type accountEndpoints struct {
	positions     string
	portfolio     string
	historicals   string
	account       string
	accountNumber string
}

func (a *accountEndpoints) complete() bool {
	return a != nil && a.positions != "" && a.portfolio != "" && a.account != ""
}

// Session holds the auth token and the account endpoints. It is driven by
// one caller at a time; use separate sessions for concurrent callers.
type Session struct {
	creds      Credentials
	transport  Transport
	endpoints  Endpoints
	headers    map[string]string
	authHeader string
	account    *accountEndpoints
	log        *logrus.Entry
}

// NewSession creates an unauthenticated session.
func NewSession(creds Credentials, transport Transport, endpoints Endpoints, headers map[string]string, log *logrus.Entry) *Session {
	if headers == nil {
		headers = DefaultHeaders("", "")
	}
	if log == nil {
		log = logrus.WithField("component", "robinhood.session")
	}
	return &Session{
		creds:     creds,
		transport: transport,
		endpoints: endpoints,
		headers:   headers,
		log:       log,
	}
}

// Established reports whether the session has a token and the account
// endpoints needed by private calls.
func (s *Session) Established() bool {
	return s.authHeader != "" && s.account.complete()
}

// EnsureEstablished logs in and discovers the account endpoints unless the
// session is already established. Step failures are logged; the final
// state check decides the outcome.
func (s *Session) EnsureEstablished(ctx context.Context) error {
	if s.Established() {
		return nil
	}

	err := s.login(ctx)
	if err == nil {
		err = s.acquireAccount(ctx)
	}
	if err != nil {
		s.log.WithError(err).Warn("unable to log into robinhood")
	} else {
		s.log.Info("robinhood logged in")
	}

	if !s.Established() {
		if err != nil {
			return errors.Wrapf(ErrAuthentication, "login failed: %v", err)
		}
		return errors.Wrap(ErrAuthentication, "login failed")
	}
	return nil
}

type loginResponse struct {
	Token       string `json:"token"`
	MFARequired bool   `json:"mfa_required"`
}

func (s *Session) login(ctx context.Context) error {
	s.log.WithField("username", s.creds.Username).Info("logging in to robinhood")

	loginURL, _ := s.endpoints.Lookup(EndpointLogin)
	form := map[string]string{
		"username": s.creds.Username,
		"password": s.creds.Password,
	}
	res, err := s.transport.PostForm(ctx, loginURL, form, s.Headers())
	if err != nil {
		return errors.Wrap(err, "login request")
	}
	if !res.OK() {
		return errors.Errorf("login returned HTTP %d: %s", res.StatusCode, snippet(res.Body))
	}

	var lr loginResponse
	if err := decode(res.Body, &lr); err != nil {
		return errors.Wrapf(err, "unable to decode login response [%s]", snippet(res.Body))
	}
	if lr.Token == "" {
		if lr.MFARequired {
			return errors.New("login requires multi-factor authentication")
		}
		return errors.Errorf("login response carries no token [%s]", snippet(res.Body))
	}

	s.authHeader = "Token " + lr.Token
	return nil
}

type accountsResponse struct {
	Results []struct {
		URL           string `json:"url"`
		Positions     string `json:"positions"`
		Portfolio     string `json:"portfolio"`
		AccountNumber string `json:"account_number"`
	} `json:"results"`
}

func (s *Session) acquireAccount(ctx context.Context) error {
	s.log.Info("acquiring account info")

	accountsURL, _ := s.endpoints.Lookup(EndpointAccounts)
	res, err := s.transport.Get(ctx, accountsURL, nil, s.Headers())
	if err != nil {
		return errors.Wrap(err, "accounts request")
	}
	if !res.OK() {
		return errors.Errorf("accounts returned HTTP %d: %s", res.StatusCode, snippet(res.Body))
	}

	var ar accountsResponse
	if err := decode(res.Body, &ar); err != nil {
		return errors.Wrapf(err, "unable to decode accounts response [%s]", snippet(res.Body))
	}
	if len(ar.Results) == 0 {
		return errors.New("accounts response has no results")
	}

	first := ar.Results[0]
	acct := &accountEndpoints{
		positions:     strings.TrimSpace(first.Positions),
		portfolio:     strings.TrimSpace(first.Portfolio),
		account:       strings.TrimSpace(first.URL),
		accountNumber: strings.TrimSpace(first.AccountNumber),
	}
	if !acct.complete() || acct.accountNumber == "" {
		return errors.Errorf("accounts response is missing account endpoints [%s]", snippet(res.Body))
	}
	acct.historicals = s.endpoints.HistoricalsURL(acct.accountNumber)

	s.account = acct
	return nil
}

// URL resolves an endpoint. Account-scoped endpoints fail with
// ErrAuthentication until the session is established.
func (s *Session) URL(e Endpoint) (string, error) {
	if !e.AccountScoped() {
		if u, ok := s.endpoints.Lookup(e); ok {
			return u, nil
		}
		return "", errors.Errorf("robinhood: no url for endpoint %s", e)
	}
	if !s.Established() {
		return "", errors.Wrapf(ErrAuthentication, "endpoint %s needs an established session", e)
	}
	switch e {
	case EndpointPositions:
		return s.account.positions, nil
	case EndpointPortfolio:
		return s.account.portfolio, nil
	case EndpointPortfolioHistoricals:
		return s.account.historicals, nil
	case EndpointAccount:
		return s.account.account, nil
	}
	return "", errors.Errorf("robinhood: no url for endpoint %s", e)
}

// Headers returns a copy of the request headers, including Authorization
// once logged in.
func (s *Session) Headers() map[string]string {
	h := make(map[string]string, len(s.headers)+1)
	for k, v := range s.headers {
		h[k] = v
	}
	if s.authHeader != "" {
		h["Authorization"] = s.authHeader
	}
	return h
}

// AccountNumber is the account discovered at login, or "".
func (s *Session) AccountNumber() string {
	if s.account == nil {
		return ""
	}
	return s.account.accountNumber
}
