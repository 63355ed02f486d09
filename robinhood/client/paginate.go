package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Page is one accepted response of a paginated listing.
type Page struct {
	URL     string
	Results []json.RawMessage
	Next    string
}

type pageBody struct {
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// CollectorOptions tunes a Collector.
type CollectorOptions struct {
	// Sleep blocks for a server requested backoff. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// MaxPages stops the walk after that many pages were read, duplicates
	// included; 0 is unbounded.
	MaxPages int
	Logger   *logrus.Entry
}

// Collector walks cursor-linked listings, honouring Retry-After.
type Collector struct {
	transport Transport
	sleep     func(time.Duration)
	maxPages  int
	log       *logrus.Entry
}

// NewCollector creates a Collector over transport.
func NewCollector(transport Transport, opts CollectorOptions) *Collector {
	c := &Collector{
		transport: transport,
		sleep:     opts.Sleep,
		maxPages:  opts.MaxPages,
		log:       opts.Logger,
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "robinhood.paginate")
	}
	return c
}

// endOfPages reports whether a cursor ends the walk.
func endOfPages(next string) bool {
	next = strings.TrimSpace(next)
	return next == "" || strings.EqualFold(next, "null")
}

// Collect fetches url and every page linked through "next". It never fails:
// a transport error, a non-200 status or an undecodable body stops the walk
// and the pages gathered so far are returned. params are sent with the first
// page only since cursor URLs carry their own query. Identical bodies are
// recorded once.
func (c *Collector) Collect(ctx context.Context, url string, params, headers map[string]string) []Page {
	var (
		pages []Page
		read  int
	)
	seen := make(map[string]struct{})
	next := url

	for !endOfPages(next) {
		if c.maxPages > 0 && read >= c.maxPages {
			c.log.WithField("max_pages", c.maxPages).Warn("pagination cap reached, stopping")
			break
		}

		log := c.log.WithField("url", next)
		log.Infof("scraping paginated url, have %d pages so far", len(pages))

		query := params
		if read > 0 {
			query = nil
		}
		res, err := c.transport.Get(ctx, next, query, headers)
		if err != nil {
			log.WithError(err).Warn("page fetch failed, truncating listing")
			break
		}

		if wait := res.RetryAfter(); wait > 0 {
			log.Infof("server asked to retry after %ds", wait)
			c.sleep(time.Duration(wait) * time.Second)
			continue
		}

		if !res.OK() {
			log.Warnf("page returned HTTP %d, truncating listing: %s", res.StatusCode, snippet(res.Body))
			break
		}

		var body pageBody
		if err := decode(res.Body, &body); err != nil {
			log.WithError(err).Warn("page body undecodable, truncating listing")
			break
		}
		read++

		key := canonicalBody(res.Body)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			page := Page{URL: next, Results: body.Results}
			if body.Next != nil {
				page.Next = *body.Next
			}
			pages = append(pages, page)
		}

		if body.Next == nil {
			break
		}
		next = *body.Next
	}

	return pages
}

// canonicalBody compacts JSON so that whitespace differences do not defeat
// duplicate detection.
func canonicalBody(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}

// collectItems decodes the results of every page into T. Items that fail
// to decode are logged and skipped. With dedupe, items whose decoded form
// is identical are kept once, at their first position.
func collectItems[T any](log *logrus.Entry, pages []Page, dedupe bool) []*T {
	var (
		items []*T
		seen  = make(map[string]struct{})
	)
	for _, page := range pages {
		for _, raw := range page.Results {
			if isNull(raw) {
				continue
			}
			item := new(T)
			if err := json.Unmarshal(raw, item); err != nil {
				log.WithError(err).Warnf("could not deserialize item %s", snippet(raw))
				continue
			}
			if dedupe {
				key, err := json.Marshal(item)
				if err == nil {
					if _, dup := seen[string(key)]; dup {
						continue
					}
					seen[string(key)] = struct{}{}
				}
			}
			items = append(items, item)
		}
	}
	return items
}
