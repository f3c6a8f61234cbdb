// Package pipeline orchestrates metric acquisition across sources and seals
// one output record per venue. Venues are processed in input order; failures
// are data attached to the record, never control flow that aborts the batch.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/capes-metrics/qualis-cli/internal/model"
	"github.com/capes-metrics/qualis-cli/internal/resilience"
	"github.com/capes-metrics/qualis-cli/internal/source"
	"github.com/capes-metrics/qualis-cli/internal/tier"
)

// Stage tracks how far a venue has progressed. Transitions never go
// backward; a failed source still advances the venue to the next stage.
type Stage string

const (
	StagePending    Stage = "pending"
	StageScrapeDone Stage = "scrape_done"
	StageScopusDone Stage = "scopus_done"
	StageWoSDone    Stage = "wos_done"
	StageFinalized  Stage = "finalized"
)

// Summary aggregates run-level counters for the final report.
type Summary struct {
	Venues    int
	WithTier  int
	AllFailed int
	QuotaHits map[string]int
	Disabled  map[string]string // source name -> reason, for sources shut off mid-run
}

// Pipeline drives acquisition. The scrape source is mandatory; the metered
// sources are nil when no credential is configured and are then never
// invoked at all.
type Pipeline struct {
	scrape source.Source
	scopus source.Source
	wos    source.Source

	scrapeBreaker *resilience.Breaker
	scopusBreaker *resilience.Breaker
	wosBreaker    *resilience.Breaker

	parallelSources bool
	now             func() time.Time

	// mu guards summary: in parallel mode the per-venue source calls run
	// concurrently and may account failures for the same venue at once.
	mu      sync.Mutex
	summary Summary
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithParallelSources runs the independent sources for one venue
// concurrently. Each source's own gate still serializes its cadence across
// venues.
func WithParallelSources(on bool) Option {
	return func(p *Pipeline) { p.parallelSources = on }
}

// WithNow injects a fixed clock for tests.
func WithNow(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline. scopus and wos may be nil (credential not
// configured). blockThreshold is the number of consecutive blocked scrape
// responses that disables the scrape source for the rest of the run.
func New(scrape, scopus, wos source.Source, blockThreshold int, opts ...Option) *Pipeline {
	p := &Pipeline{
		scrape:        scrape,
		scopus:        scopus,
		wos:           wos,
		scrapeBreaker: resilience.NewBreaker(blockThreshold),
		// Metered sources trip only on auth rejection, via ForceOpen; the
		// count threshold is irrelevant for them.
		scopusBreaker: resilience.NewBreaker(1),
		wosBreaker:    resilience.NewBreaker(1),
		now:           time.Now,
		summary: Summary{
			QuotaHits: make(map[string]int),
			Disabled:  make(map[string]string),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Summary returns a copy of the run-level counters accumulated so far.
func (p *Pipeline) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.summary
	s.QuotaHits = make(map[string]int, len(p.summary.QuotaHits))
	for k, v := range p.summary.QuotaHits {
		s.QuotaHits[k] = v
	}
	s.Disabled = make(map[string]string, len(p.summary.Disabled))
	for k, v := range p.summary.Disabled {
		s.Disabled[k] = v
	}
	return s
}

func (p *Pipeline) noteDisabled(source, reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary.Disabled[source] = reason
}

func (p *Pipeline) noteQuotaHit(source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary.QuotaHits[source]++
}

// CollectConferences processes conference venues in order, one record each.
func (p *Pipeline) CollectConferences(ctx context.Context, venues []model.VenueIdentity) []model.ConferenceRecord {
	records := make([]model.ConferenceRecord, 0, len(venues))
	for i, v := range venues {
		zap.L().Info("collecting conference",
			zap.Int("n", i+1),
			zap.Int("total", len(venues)),
			zap.String("code", v.Code),
		)
		records = append(records, p.collectConference(ctx, v))
	}
	p.logRunEnd("conferences", len(venues))
	return records
}

// CollectJournals processes journal venues in order, one record each.
func (p *Pipeline) CollectJournals(ctx context.Context, venues []model.VenueIdentity) []model.JournalRecord {
	records := make([]model.JournalRecord, 0, len(venues))
	for i, v := range venues {
		zap.L().Info("collecting journal",
			zap.Int("n", i+1),
			zap.Int("total", len(venues)),
			zap.String("code", v.Code),
		)
		records = append(records, p.collectJournal(ctx, v))
	}
	p.logRunEnd("journals", len(venues))
	return records
}

func (p *Pipeline) collectConference(ctx context.Context, v model.VenueIdentity) model.ConferenceRecord {
	stage := StagePending
	res := p.callSource(ctx, p.scrape, p.scrapeBreaker, v)
	stage = StageScrapeDone

	rec := model.ConferenceRecord{
		Sigla:        v.Code,
		NomeCompleto: v.FullName,
		NomeGSM:      res.MatchedName,
		H5Index:      res.H5Index,
		H5Median:     res.H5Median,
		EstratoCapes: tier.Label(res.Tier),
		URLFonte:     res.URL,
		DataColeta:   p.now().Format(time.RFC3339),
	}
	if res.Err != nil {
		rec.Erro = res.Err.Error()
	}

	stage = StageFinalized
	p.account(res.Tier != nil, res.Tier == nil)
	zap.L().Debug("conference sealed",
		zap.String("code", v.Code),
		zap.String("stage", string(stage)),
		zap.String("estrato", rec.EstratoCapes),
	)
	return rec
}

func (p *Pipeline) collectJournal(ctx context.Context, v model.VenueIdentity) model.JournalRecord {
	stage := StagePending

	var gsmRes, csRes, jifRes model.SourceResult
	if p.parallelSources {
		// The three sources share no state; only each source's own gate
		// serializes it across venues.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			gsmRes = p.callSource(gctx, p.scrape, p.scrapeBreaker, v)
			return nil
		})
		g.Go(func() error {
			csRes = p.callSource(gctx, p.scopus, p.scopusBreaker, v)
			return nil
		})
		g.Go(func() error {
			jifRes = p.callSource(gctx, p.wos, p.wosBreaker, v)
			return nil
		})
		_ = g.Wait()
		stage = StageWoSDone
	} else {
		gsmRes = p.callSource(ctx, p.scrape, p.scrapeBreaker, v)
		stage = StageScrapeDone
		csRes = p.callSource(ctx, p.scopus, p.scopusBreaker, v)
		stage = StageScopusDone
		jifRes = p.callSource(ctx, p.wos, p.wosBreaker, v)
		stage = StageWoSDone
	}

	rec := model.JournalRecord{
		Sigla:        v.Code,
		NomeCompleto: v.FullName,
		ISSN:         v.ISSN,
		NomeGSM:      gsmRes.MatchedName,

		H5Index:   gsmRes.H5Index,
		H5Median:  gsmRes.H5Median,
		EstratoH5: tier.Label(gsmRes.Tier),

		CiteScore:        csRes.CiteScore,
		Percentil:        csRes.Percentile,
		AreaTematica:     csRes.SubjectArea,
		EstratoPercentil: tier.Label(csRes.Tier),

		JIF:          jifRes.JIF,
		JIFPercentil: jifRes.JIFPercentile,
		CategoriaWoS: jifRes.Category,
		EstratoJIF:   tier.Label(jifRes.Tier),

		URLGSM:     gsmRes.URL,
		URLScopus:  csRes.URL,
		URLWoS:     jifRes.URL,
		Erro:       joinErrors(gsmRes, csRes, jifRes),
		DataColeta: p.now().Format(time.RFC3339),
	}

	var tiers []tier.Tier
	for _, r := range []model.SourceResult{gsmRes, csRes, jifRes} {
		if r.Tier != nil {
			tiers = append(tiers, *r.Tier)
		}
	}
	if best, ok := tier.Combine(tiers...); ok {
		rec.EstratoFinal = best.String()
		p.account(true, false)
	} else {
		// Absence of a final estrato is the visible signal of total
		// failure; the record still exists.
		rec.EstratoFinal = "N/A"
		p.account(false, true)
	}

	stage = StageFinalized
	zap.L().Debug("journal sealed",
		zap.String("code", v.Code),
		zap.String("stage", string(stage)),
		zap.String("estrato_final", rec.EstratoFinal),
	)
	return rec
}

// callSource runs one source behind its breaker. A nil source (credential
// not configured) yields an empty result and no call. A disabled source
// yields a Skipped annotation.
func (p *Pipeline) callSource(ctx context.Context, src source.Source, b *resilience.Breaker, v model.VenueIdentity) model.SourceResult {
	if src == nil {
		return model.SourceResult{}
	}
	if !b.Allow() {
		return model.SourceResult{
			Source: src.Name(),
			Err:    model.NewSourceError(model.ErrSkipped, "%s", b.Reason()),
		}
	}

	res := src.Fetch(ctx, v)
	if res.Err == nil {
		b.RecordSuccess()
		return res
	}

	switch res.Err.Kind {
	case model.ErrBlocked:
		b.RecordFailure("sustained blocking, source disabled for this run")
		if !b.Allow() {
			p.noteDisabled(src.Name(), b.Reason())
			zap.L().Warn("source disabled after sustained blocking",
				zap.String("source", src.Name()),
			)
		}
	case model.ErrAuth:
		b.ForceOpen("authentication rejected, source disabled for this run")
		p.noteDisabled(src.Name(), b.Reason())
		zap.L().Error("source disabled after credential rejection",
			zap.String("source", src.Name()),
			zap.String("error", res.Err.Error()),
		)
	case model.ErrQuotaExceeded:
		p.noteQuotaHit(src.Name())
		b.RecordSuccess()
	default:
		// NotFound, MissingIdentifier, NetworkError, ParseError break a
		// blocked streak but are otherwise per-venue data.
		b.RecordSuccess()
	}
	return res
}

func (p *Pipeline) account(withTier, allFailed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summary.Venues++
	if withTier {
		p.summary.WithTier++
	}
	if allFailed {
		p.summary.AllFailed++
	}
}

func (p *Pipeline) logRunEnd(kind string, n int) {
	s := p.Summary()
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.Int("venues", n),
		zap.Int("with_tier", s.WithTier),
		zap.Int("all_failed", s.AllFailed),
	}
	for src, hits := range s.QuotaHits {
		fields = append(fields, zap.Int("quota_hits_"+src, hits))
	}
	for src, reason := range s.Disabled {
		fields = append(fields, zap.String("disabled_"+src, reason))
	}
	zap.L().Info("collection complete", fields...)
}

func joinErrors(results ...model.SourceResult) string {
	var parts []string
	for _, r := range results {
		if r.Err != nil && r.Source != "" {
			parts = append(parts, r.Source+": "+r.Err.Error())
		}
	}
	return strings.Join(parts, "; ")
}
