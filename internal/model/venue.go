// Package model defines the data carried through the collection pipeline:
// venue identities, per-source results, and the sealed output records.
package model

// VenueKind distinguishes the two classes of venues under evaluation.
type VenueKind string

const (
	KindConference VenueKind = "conference"
	KindJournal    VenueKind = "journal"
)

// VenueIdentity is one input row: a short code (unique key), the full venue
// name, and for journals an optional ISSN. Loaded once per run, never mutated.
type VenueIdentity struct {
	Code     string    `json:"code"`
	FullName string    `json:"full_name,omitempty"`
	ISSN     string    `json:"issn,omitempty"`
	Kind     VenueKind `json:"kind"`
}

// Query returns the search term for free-text sources: the full name when
// present, otherwise the code. Full names match far more precisely.
func (v VenueIdentity) Query() string {
	if v.FullName != "" {
		return v.FullName
	}
	return v.Code
}
