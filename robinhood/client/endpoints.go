package client

import "strings"

// DefaultBaseURL is the public API host.
const DefaultBaseURL = "https://api.robinhood.com/"

// Endpoint names a logical API endpoint.
type Endpoint int

// Static endpoints, fixed at construction.
const (
	EndpointLogin Endpoint = iota
	EndpointInvestmentProfile
	EndpointAccounts
	EndpointACHIAVAuth
	EndpointACHRelationships
	EndpointACHTransfers
	EndpointApplications
	EndpointDividends
	EndpointEDocuments
	EndpointInstruments
	EndpointMarginUpgrades
	EndpointMarkets
	EndpointNotifications
	EndpointOrders
	EndpointPasswordReset
	EndpointQuotes
	EndpointDocumentRequests
	EndpointUser
	EndpointUserAdditionalInfo
	EndpointUserBasicInfo
	EndpointUserEmployment
	EndpointUserInvestmentProfile
	EndpointWatchlists

	// Account-scoped endpoints, known only after login.
	EndpointPositions
	EndpointPortfolio
	EndpointPortfolioHistoricals
	EndpointAccount
)

var endpointNames = map[Endpoint]string{
	EndpointLogin:                 "login",
	EndpointInvestmentProfile:     "investment_profile",
	EndpointAccounts:              "accounts",
	EndpointACHIAVAuth:            "ach_iav_auth",
	EndpointACHRelationships:      "ach_relationships",
	EndpointACHTransfers:          "ach_transfers",
	EndpointApplications:          "applications",
	EndpointDividends:             "dividends",
	EndpointEDocuments:            "edocuments",
	EndpointInstruments:           "instruments",
	EndpointMarginUpgrades:        "margin_upgrades",
	EndpointMarkets:               "markets",
	EndpointNotifications:         "notifications",
	EndpointOrders:                "orders",
	EndpointPasswordReset:         "password_reset",
	EndpointQuotes:                "quotes",
	EndpointDocumentRequests:      "document_requests",
	EndpointUser:                  "user",
	EndpointUserAdditionalInfo:    "user/additional_info",
	EndpointUserBasicInfo:         "user/basic_info",
	EndpointUserEmployment:        "user/employment",
	EndpointUserInvestmentProfile: "user/investment_profile",
	EndpointWatchlists:            "watchlists",
	EndpointPositions:             "positions",
	EndpointPortfolio:             "portfolio",
	EndpointPortfolioHistoricals:  "portfolios_historicals",
	EndpointAccount:               "account",
}

// Paths of the static endpoints relative to the base URL.
var staticPaths = map[Endpoint]string{
	EndpointLogin:                 "api-token-auth/",
	EndpointInvestmentProfile:     "user/investment_profile/",
	EndpointAccounts:              "accounts/",
	EndpointACHIAVAuth:            "ach/iav/auth/",
	EndpointACHRelationships:      "ach/relationships/",
	EndpointACHTransfers:          "ach/transfers/",
	EndpointApplications:          "applications/",
	EndpointDividends:             "dividends/",
	EndpointEDocuments:            "documents/",
	EndpointInstruments:           "instruments/",
	EndpointMarginUpgrades:        "margin/upgrades/",
	EndpointMarkets:               "markets/",
	EndpointNotifications:         "notifications/",
	EndpointOrders:                "orders/",
	EndpointPasswordReset:         "password_reset/request/",
	EndpointQuotes:                "quotes/",
	EndpointDocumentRequests:      "upload/document_requests/",
	EndpointUser:                  "user/",
	EndpointUserAdditionalInfo:    "user/additional_info/",
	EndpointUserBasicInfo:         "user/basic_info/",
	EndpointUserEmployment:        "user/employment/",
	EndpointUserInvestmentProfile: "user/investment_profile/",
	EndpointWatchlists:            "watchlists/",
}

// historicalsPath is joined with the account number after login.
const historicalsPath = "portfolios/historicals/"

func (e Endpoint) String() string {
	if name, ok := endpointNames[e]; ok {
		return name
	}
	return "unknown"
}

// AccountScoped reports whether e is only resolvable on an established session.
func (e Endpoint) AccountScoped() bool {
	return e >= EndpointPositions
}

// Endpoints is the read-only table of static endpoint URLs.
type Endpoints struct {
	base string
	urls map[Endpoint]string
}

// NewEndpoints builds the static table under baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewEndpoints(baseURL string) Endpoints {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	urls := make(map[Endpoint]string, len(staticPaths))
	for e, p := range staticPaths {
		urls[e] = base + p
	}
	return Endpoints{base: base, urls: urls}
}

// Base returns the base URL, always ending in a slash.
func (t Endpoints) Base() string {
	return t.base
}

// Lookup returns the URL of a static endpoint.
func (t Endpoints) Lookup(e Endpoint) (string, bool) {
	u, ok := t.urls[e]
	return u, ok
}

// HistoricalsURL returns the portfolio historicals URL of an account.
func (t Endpoints) HistoricalsURL(accountNumber string) string {
	return t.base + historicalsPath + accountNumber
}
