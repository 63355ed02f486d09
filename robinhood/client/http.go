package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cheddar/hoodbot/pkg/ratelimit"
)

// Result is a completed HTTP exchange.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 200 response.
func (r *Result) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// RetryAfter is the server backoff directive in whole seconds. Absent,
// non-numeric and negative values read as zero.
func (r *Result) RetryAfter() int {
	if r == nil || r.Header == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.Header.Get("Retry-After")))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Transport sends queries to the API. An error means no response was
// received at all; any HTTP status is returned as a Result.
type Transport interface {
	Get(ctx context.Context, url string, params, headers map[string]string) (*Result, error)
	PostForm(ctx context.Context, url string, form, headers map[string]string) (*Result, error)
}

// TransportOptions configures NewRestyTransport.
type TransportOptions struct {
	Timeout           time.Duration
	RetryCount        int // resty retries on network errors; 0 disables
	RetryWaitTime     time.Duration
	Proxy             string
	RequestsPerSecond int // client-side pacing; 0 disables
	Debug             bool
	Logger            *logrus.Entry
}

// RestyTransport is the production Transport.
type RestyTransport struct {
	client  *resty.Client
	limiter ratelimit.Limiter
	log     *logrus.Entry
}

var _ Transport = (*RestyTransport)(nil)

// NewRestyTransport builds a resty backed Transport. resty picks up
// HTTP_PROXY / HTTPS_PROXY from the environment unless Proxy is set.
func NewRestyTransport(opts TransportOptions) *RestyTransport {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logrus.WithField("component", "robinhood.http")
	}

	c := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(10 * opts.RetryWaitTime).
		SetDebug(opts.Debug)
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}

	t := &RestyTransport{client: c, log: log}
	if tb := ratelimit.PerSecond(opts.RequestsPerSecond); tb != nil {
		t.limiter = tb
	}
	return t
}

func (t *RestyTransport) newRequest(ctx context.Context, headers map[string]string) (*resty.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limit wait")
		}
	}
	return t.client.R().SetContext(ctx).SetHeaders(headers), nil
}

// Get sends a GET with params as the query string.
func (t *RestyTransport) Get(ctx context.Context, url string, params, headers map[string]string) (*Result, error) {
	req, err := t.newRequest(ctx, headers)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	return t.finish(http.MethodGet, url, time.Now(), func() (*resty.Response, error) { return req.Get(url) })
}

// PostForm sends a form-encoded POST.
func (t *RestyTransport) PostForm(ctx context.Context, url string, form, headers map[string]string) (*Result, error) {
	req, err := t.newRequest(ctx, headers)
	if err != nil {
		return nil, err
	}
	req.SetFormData(form)
	return t.finish(http.MethodPost, url, time.Now(), func() (*resty.Response, error) { return req.Post(url) })
}

func (t *RestyTransport) finish(method, url string, start time.Time, do func() (*resty.Response, error)) (*Result, error) {
	resp, err := do()
	took := time.Since(start)
	if err != nil {
		t.log.WithError(err).Debugf("%s %s failed after %v", method, url, took)
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}
	t.log.Debugf("%s %s -> %d (%v)", method, url, resp.StatusCode(), took)
	return &Result{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}
