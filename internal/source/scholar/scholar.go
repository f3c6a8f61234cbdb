// Package scholar scrapes the public top-venues catalog for H5 metrics. The
// catalog is unauthenticated but rate-sensitive, so every request passes the
// politeness gate first and block detection runs before any parsing.
package scholar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/capes-metrics/qualis-cli/internal/gate"
	"github.com/capes-metrics/qualis-cli/internal/model"
	"github.com/capes-metrics/qualis-cli/internal/source"
	"github.com/capes-metrics/qualis-cli/internal/tier"
)

const defaultBaseURL = "https://scholar.google.com"

// maxBodyBytes caps response reads; venue search pages are well under this.
const maxBodyBytes = 1 << 20

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// Client scrapes venue metrics from the top-venues search. One HTTP session
// is reused across calls.
type Client struct {
	baseURL string
	http    *http.Client
	gate    *gate.Gate
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom catalog base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a scraping client behind the given politeness gate.
func New(g *gate.Gate, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		gate:    g,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return source.NameScholar }

// Fetch searches the catalog for the venue and extracts the first row of
// the results table. The first row is taken as authoritative — the client
// never disambiguates among candidates. The matched name is surfaced so a
// downstream reviewer can catch mismatches.
func (c *Client) Fetch(ctx context.Context, venue model.VenueIdentity) model.SourceResult {
	res := model.SourceResult{Source: c.Name()}

	if err := c.gate.Wait(ctx); err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "wait interrupted: %v", err)
		return res
	}

	query := venue.Query()
	reqURL := fmt.Sprintf("%s/citations?view_op=search_venues&vq=%s&hl=en",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "create request: %v", err)
		return res
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "fetch: %v", err)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "read body: %v", err)
		return res
	}

	// Block detection outranks status handling: challenge pages come back
	// with assorted status codes.
	if blocked, marker := DetectBlock(resp, body); blocked {
		zap.L().Warn("scrape blocked",
			zap.String("venue", venue.Code),
			zap.String("marker", marker),
		)
		res.Err = model.NewSourceError(model.ErrBlocked, "challenge page (%s)", marker)
		return res
	}

	if resp.StatusCode >= 400 {
		res.Err = model.NewSourceError(model.ErrNetwork, "status %d", resp.StatusCode)
		return res
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		res.Err = model.NewSourceError(model.ErrParse, "parse html: %v", err)
		return res
	}

	table := doc.Find("table#gsc_mvt_table")
	if table.Length() == 0 {
		res.Err = model.NewSourceError(model.ErrNotFound, "no results for %q", query)
		return res
	}

	// Header rows carry th cells only; the first row with td cells is the
	// best match.
	row := table.Find("tr").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("td").Length() > 0
	}).First()
	if row.Length() == 0 {
		res.Err = model.NewSourceError(model.ErrNotFound, "results table is empty")
		return res
	}

	res.MatchedName = strings.TrimSpace(row.Find("td.gsc_mvt_t").Text())

	cells := row.Find("td.gsc_mvt_n")
	if cells.Length() >= 1 {
		link := cells.Eq(0).Find("a").First()
		if n, convErr := strconv.Atoi(strings.TrimSpace(link.Text())); convErr == nil {
			res.H5Index = &n
			if href, ok := link.Attr("href"); ok && href != "" {
				res.URL = c.baseURL + href
			}
		}
	}
	if cells.Length() >= 2 {
		if n, convErr := strconv.Atoi(strings.TrimSpace(cells.Eq(1).Text())); convErr == nil {
			res.H5Median = &n
		}
	}

	if res.H5Index == nil {
		res.MatchedName = ""
		res.URL = ""
		res.Err = model.NewSourceError(model.ErrParse, "first row has no readable h5 index")
		return res
	}

	t := tier.FromH5(*res.H5Index)
	res.Tier = &t

	zap.L().Debug("scrape match",
		zap.String("venue", venue.Code),
		zap.String("matched", res.MatchedName),
		zap.Int("h5_index", *res.H5Index),
		zap.String("tier", t.String()),
	)
	return res
}
