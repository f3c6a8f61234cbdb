package model

import "github.com/capes-metrics/qualis-cli/internal/tier"

// SourceResult is the outcome of one client invocation for one venue.
// Instances are created fresh per run per source and never mutated after the
// client returns them. A result is usable or carries exactly one error.
type SourceResult struct {
	Source      string `json:"source"`
	MatchedName string `json:"matched_name,omitempty"` // as matched by the source; may differ from the query

	// Scrape-source metrics.
	H5Index  *int `json:"h5_index,omitempty"`
	H5Median *int `json:"h5_median,omitempty"`

	// CiteScore-source metrics.
	CiteScore   *float64 `json:"citescore,omitempty"`
	Percentile  *float64 `json:"percentile,omitempty"`
	SubjectArea string   `json:"subject_area,omitempty"`

	// JIF-source metrics.
	JIF           *float64 `json:"jif,omitempty"`
	JIFPercentile *float64 `json:"jif_percentile,omitempty"`
	Category      string   `json:"category,omitempty"`

	Tier *tier.Tier   `json:"tier,omitempty"`
	URL  string       `json:"url,omitempty"`
	Err  *SourceError `json:"error,omitempty"`
}

// OK reports whether the result is usable.
func (r SourceResult) OK() bool {
	return r.Err == nil
}

// ConferenceRecord is the sealed per-conference output. Field names follow
// the established output contract of the collection runs.
type ConferenceRecord struct {
	Sigla        string `json:"sigla"`
	NomeCompleto string `json:"nome_completo,omitempty"`
	NomeGSM      string `json:"nome_gsm,omitempty"`
	H5Index      *int   `json:"h5_index"`
	H5Median     *int   `json:"h5_median"`
	EstratoCapes string `json:"estrato_capes"`
	URLFonte     string `json:"url_fonte,omitempty"`
	Erro         string `json:"erro,omitempty"`
	DataColeta   string `json:"data_coleta"`
}

// JournalRecord is the sealed per-journal output: H5 from the scrape source
// plus the two percentile-bearing metered sources, and the combined estrato.
type JournalRecord struct {
	Sigla        string `json:"sigla"`
	NomeCompleto string `json:"nome_completo"`
	ISSN         string `json:"issn,omitempty"`
	NomeGSM      string `json:"nome_gsm,omitempty"`

	H5Index   *int   `json:"h5_index"`
	H5Median  *int   `json:"h5_median"`
	EstratoH5 string `json:"estrato_h5"`

	CiteScore        *float64 `json:"citescore"`
	Percentil        *float64 `json:"percentil"`
	AreaTematica     string   `json:"area_tematica,omitempty"`
	EstratoPercentil string   `json:"estrato_percentil"`

	JIF          *float64 `json:"jif"`
	JIFPercentil *float64 `json:"jif_percentil"`
	CategoriaWoS string   `json:"categoria_wos,omitempty"`
	EstratoJIF   string   `json:"estrato_jif"`

	EstratoFinal string `json:"estrato_final"`

	URLGSM     string `json:"url_gsm,omitempty"`
	URLScopus  string `json:"url_scopus,omitempty"`
	URLWoS     string `json:"url_wos,omitempty"`
	Erro       string `json:"erro,omitempty"`
	DataColeta string `json:"data_coleta"`
}
