// Package wos queries the Web of Science starter API for the Journal Impact
// Factor and its category percentile. Free tier is 5000 requests a month, so
// the client sits behind a politeness gate plus a client-side rate ceiling
// and is only constructed when a credential is configured.
package wos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/capes-metrics/qualis-cli/internal/gate"
	"github.com/capes-metrics/qualis-cli/internal/model"
	"github.com/capes-metrics/qualis-cli/internal/source"
	"github.com/capes-metrics/qualis-cli/internal/tier"
)

const (
	defaultBaseURL   = "https://api.clarivate.com/apis/wos-starter/v1"
	profileURLFormat = "https://jcr.clarivate.com/jcr/journal-profile?journal=%s"
)

// Client calls the starter /journals endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	gate    *gate.Gate
	limiter *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit overrides the client-side requests-per-second ceiling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// New creates a JIF client behind the given politeness gate.
func New(apiKey string, g *gate.Gate, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		gate:    g,
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	zap.L().Debug("jif client ready", zap.String("key", source.MaskKey(apiKey)))
	return c
}

func (c *Client) Name() string { return source.NameWoS }

type journalsResponse struct {
	Data []journalEntry `json:"data"`
}

type journalEntry struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Metrics journalMetrics `json:"metrics"`
}

type journalMetrics struct {
	JIF           *float64 `json:"jif"`
	JIFPercentile *float64 `json:"jif_percentile"`
	Category      string   `json:"category"`
}

// Fetch looks the journal up by ISSN. The starter API only supports ISSN
// lookup, so a missing ISSN fails fast with no network call.
func (c *Client) Fetch(ctx context.Context, venue model.VenueIdentity) model.SourceResult {
	res := model.SourceResult{Source: c.Name()}

	issn := strings.TrimSpace(venue.ISSN)
	if issn == "" {
		res.Err = model.NewSourceError(model.ErrMissingIdentifier,
			"no ISSN for %q; journal lookup requires one", venue.Code)
		return res
	}

	if err := c.gate.Wait(ctx); err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "wait interrupted: %v", err)
		return res
	}
	if err := c.limiter.Wait(ctx); err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "rate wait interrupted: %v", err)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/journals", nil)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "create request: %v", err)
		return res
	}
	q := req.URL.Query()
	q.Set("issn", issn)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-ApiKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "fetch: %v", err)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "read body: %v", err)
		return res
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		res.Err = model.NewSourceError(model.ErrAuth,
			"authentication rejected (key %s)", source.MaskKey(c.apiKey))
		return res
	case http.StatusTooManyRequests:
		res.Err = model.NewSourceError(model.ErrQuotaExceeded, "quota exceeded (5000 req/month)")
		return res
	case http.StatusNotFound:
		res.Err = model.NewSourceError(model.ErrNotFound, "no journal record for ISSN %s", issn)
		return res
	}
	if resp.StatusCode != http.StatusOK {
		res.Err = model.NewSourceError(model.ErrNetwork, "status %d", resp.StatusCode)
		return res
	}

	var payload journalsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		res.Err = model.NewSourceError(model.ErrParse, "unmarshal: %v", err)
		return res
	}
	if len(payload.Data) == 0 {
		res.Err = model.NewSourceError(model.ErrNotFound, "empty result set for ISSN %s", issn)
		return res
	}

	journal := payload.Data[0]
	res.MatchedName = journal.Name
	res.Category = journal.Metrics.Category
	if journal.ID != "" {
		res.URL = fmt.Sprintf(profileURLFormat, journal.ID)
	}

	if journal.Metrics.JIF == nil && journal.Metrics.JIFPercentile == nil {
		res.Err = model.NewSourceError(model.ErrNotFound,
			"journal found for ISSN %s but carries no JIF metrics", issn)
		return res
	}

	res.JIF = journal.Metrics.JIF
	res.JIFPercentile = journal.Metrics.JIFPercentile
	if res.JIFPercentile != nil {
		t := tier.FromPercentile(*res.JIFPercentile)
		res.Tier = &t
	}

	zap.L().Debug("jif match",
		zap.String("venue", venue.Code),
		zap.String("issn", issn),
		zap.String("tier", tier.Label(res.Tier)),
	)
	return res
}
