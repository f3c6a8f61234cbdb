// Package scopus queries the Elsevier serial-title API for CiteScore and
// its subject-category percentile. The service is metered and keyed: the
// client exists only when a credential is configured, looks journals up by
// ISSN, and keeps a conservative request cadence.
package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	defaultBaseURL  = "https://api.elsevier.com/content/serial/title"
	sourceURLFormat = "https://www.scopus.com/sourceid/%s"
)

// Client calls the serial-title endpoint with the CiteScore view.
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

// New creates a CiteScore client behind the given politeness gate.
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
	zap.L().Debug("citescore client ready", zap.String("key", source.MaskKey(apiKey)))
	return c
}

func (c *Client) Name() string { return source.NameScopus }

// serialResponse mirrors the subset of the serial-title payload the
// collector reads.
type serialResponse struct {
	Metadata struct {
		Entry []serialEntry `json:"entry"`
	} `json:"serial-metadata-response"`
}

type serialEntry struct {
	SourceID              string `json:"source-id"`
	Title                 string `json:"dc:title"`
	CiteScoreYearInfoList struct {
		YearInfo []citeScoreYearInfo `json:"citeScoreYearInfo"`
	} `json:"citeScoreYearInfoList"`
}

type citeScoreYearInfo struct {
	Year      string        `json:"@year"`
	CiteScore string        `json:"citeScore"`
	Ranks     []subjectRank `json:"citeScoreSubjectRank"`
}

type subjectRank struct {
	SubjectCode string `json:"subjectCode"`
	Rank        string `json:"rank"`
	Percentile  string `json:"percentile"`
}

// Fetch looks the journal up by ISSN. Without an ISSN it fails fast and
// makes no network call — the serial API has no reliable free-text search.
func (c *Client) Fetch(ctx context.Context, venue model.VenueIdentity) model.SourceResult {
	res := model.SourceResult{Source: c.Name()}

	issn := strings.TrimSpace(venue.ISSN)
	if issn == "" {
		res.Err = model.NewSourceError(model.ErrMissingIdentifier,
			"no ISSN for %q; serial lookup requires one", venue.Code)
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

	reqURL := fmt.Sprintf("%s/issn/%s?view=CITESCORE", c.baseURL, url.PathEscape(issn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		res.Err = model.NewSourceError(model.ErrNetwork, "create request: %v", err)
		return res
	}
	req.Header.Set("X-ELS-APIKey", c.apiKey)
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
		res.Err = model.NewSourceError(model.ErrQuotaExceeded, "quota exceeded")
		return res
	case http.StatusNotFound:
		res.Err = model.NewSourceError(model.ErrNotFound, "no serial record for ISSN %s", issn)
		return res
	}
	if resp.StatusCode != http.StatusOK {
		res.Err = model.NewSourceError(model.ErrNetwork, "status %d", resp.StatusCode)
		return res
	}

	var payload serialResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		res.Err = model.NewSourceError(model.ErrParse, "unmarshal: %v", err)
		return res
	}
	if len(payload.Metadata.Entry) == 0 {
		res.Err = model.NewSourceError(model.ErrNotFound, "empty result set for ISSN %s", issn)
		return res
	}

	entry := payload.Metadata.Entry[0]
	res.MatchedName = entry.Title
	if entry.SourceID != "" {
		res.URL = fmt.Sprintf(sourceURLFormat, entry.SourceID)
	}

	years := entry.CiteScoreYearInfoList.YearInfo
	if len(years) == 0 {
		res.Err = model.NewSourceError(model.ErrNotFound, "no citescore data for ISSN %s", issn)
		return res
	}

	// Most recent year is last; its best category (highest percentile)
	// decides the tier.
	latest := years[len(years)-1]
	if cs, convErr := strconv.ParseFloat(latest.CiteScore, 64); convErr == nil {
		v := cs
		res.CiteScore = &v
	}

	var bestPct *float64
	for _, r := range latest.Ranks {
		pct, convErr := strconv.ParseFloat(r.Percentile, 64)
		if convErr != nil {
			continue
		}
		if bestPct == nil || pct > *bestPct {
			v := pct
			bestPct = &v
			res.SubjectArea = r.SubjectCode
		}
	}
	res.Percentile = bestPct

	if res.CiteScore == nil && res.Percentile == nil {
		res.MatchedName = ""
		res.URL = ""
		res.SubjectArea = ""
		res.Err = model.NewSourceError(model.ErrParse,
			"citescore entry for ISSN %s has no readable metrics", issn)
		return res
	}

	if res.Percentile != nil {
		t := tier.FromPercentile(*res.Percentile)
		res.Tier = &t
	}

	zap.L().Debug("citescore match",
		zap.String("venue", venue.Code),
		zap.String("issn", issn),
		zap.String("tier", tier.Label(res.Tier)),
	)
	return res
}
