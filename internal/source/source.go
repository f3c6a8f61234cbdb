// Package source defines the capability contract shared by the three metric
// acquisition clients. The clients differ in transport, authentication, and
// error shapes; the orchestrator treats them uniformly through Source.
package source

import (
	"context"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

// Source names, used in logs, breakers, and error annotations.
const (
	NameScholar = "gsm"
	NameScopus  = "scopus"
	NameWoS     = "wos"
)

// Source fetches metrics for a single venue. Implementations own their HTTP
// session and credential state, constructed once at startup and reused
// across calls. Fetch never panics and never returns a partial result that
// both carries a metric and an error.
type Source interface {
	Name() string
	Fetch(ctx context.Context, venue model.VenueIdentity) model.SourceResult
}

// MaskKey renders a credential for logs and error messages: only the last
// four characters are visible, and short keys are hidden entirely. Full
// credential values must never reach any diagnostic output.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
