package client

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ClientConfig holds the client configuration.
type ClientConfig struct {
	BaseURL    string
	APIVersion string
	UserAgent  string

	// Transport overrides the resty transport built from HTTP.
	Transport Transport
	HTTP      TransportOptions

	// MaxPages caps every paginated listing; 0 is unbounded.
	MaxPages int
	// Sleep is used for Retry-After backoff. Defaults to time.Sleep.
	Sleep func(time.Duration)

	Logger *logrus.Entry
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    DefaultBaseURL,
		APIVersion: DefaultAPIVersion,
		UserAgent:  DefaultUserAgent,
		HTTP: TransportOptions{
			Timeout: 30 * time.Second,
		},
	}
}

// Client is the trading gateway. It is not safe for concurrent use.
type Client struct {
	session   *Session
	collector *Collector
	transport Transport
	endpoints Endpoints
	log       *logrus.Entry
}

// NewClient creates a client with the default configuration.
func NewClient(creds Credentials) *Client {
	return NewClientWithConfig(creds, DefaultClientConfig())
}

// NewClientWithConfig creates a client. No request is sent until the
// first operation.
func NewClientWithConfig(creds Credentials, config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}

	log := config.Logger
	if log == nil {
		log = logrus.WithField("component", "robinhood")
	}

	transport := config.Transport
	if transport == nil {
		opts := config.HTTP
		if opts.Logger == nil {
			opts.Logger = log.WithField("component", "robinhood.http")
		}
		transport = NewRestyTransport(opts)
	}

	endpoints := NewEndpoints(config.BaseURL)
	headers := DefaultHeaders(config.APIVersion, config.UserAgent)

	return &Client{
		session:   NewSession(creds, transport, endpoints, headers, log.WithField("component", "robinhood.session")),
		collector: NewCollector(transport, CollectorOptions{Sleep: config.Sleep, MaxPages: config.MaxPages, Logger: log.WithField("component", "robinhood.paginate")}),
		transport: transport,
		endpoints: endpoints,
		log:       log,
	}
}

// Session exposes the underlying session.
func (c *Client) Session() *Session {
	return c.session
}

// Login establishes the session up front. Every authenticated operation
// does this on demand.
func (c *Client) Login(ctx context.Context) error {
	return c.session.EnsureEstablished(ctx)
}

// getObject sends an authorised GET and requires a 200 with a decodable
// body. Any failure is ErrTransport.
func (c *Client) getObject(ctx context.Context, url string, params map[string]string, v any) error {
	res, err := c.transport.Get(ctx, url, params, c.session.Headers())
	if err != nil {
		return wrapTransport(err, "GET %s", url)
	}
	if !res.OK() {
		return wrapTransport(nil, "GET %s returned HTTP %d: %s", url, res.StatusCode, snippet(res.Body))
	}
	if isNull(res.Body) {
		return wrapTransport(nil, "GET %s returned a null body", url)
	}
	if err := decode(res.Body, v); err != nil {
		return wrapTransport(err, "GET %s: unable to decode [%s]", url, snippet(res.Body))
	}
	return nil
}
