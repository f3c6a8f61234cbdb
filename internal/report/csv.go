// Package report serializes sealed records to CSV, JSON, and console tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

// ConferenceColumns is the fixed CSV column order for conference records.
var ConferenceColumns = []string{
	"sigla", "nome_completo", "nome_gsm", "h5_index", "h5_median",
	"estrato_capes", "url_fonte", "erro", "data_coleta",
}

// JournalColumns is the fixed CSV column order for journal records.
var JournalColumns = []string{
	"sigla", "nome_completo", "issn", "nome_gsm",
	"h5_index", "h5_median", "estrato_h5",
	"citescore", "percentil", "area_tematica", "estrato_percentil",
	"jif", "jif_percentil", "categoria_wos", "estrato_jif",
	"estrato_final", "url_gsm", "url_scopus", "url_wos",
	"erro", "data_coleta",
}

// WriteConferenceCSV writes records with the ConferenceColumns header.
func WriteConferenceCSV(w io.Writer, records []model.ConferenceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ConferenceColumns); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, r := range records {
		row := []string{
			r.Sigla, r.NomeCompleto, r.NomeGSM,
			intCell(r.H5Index), intCell(r.H5Median),
			r.EstratoCapes, r.URLFonte, r.Erro, r.DataColeta,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "report: write csv row for %s", r.Sigla)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// WriteJournalCSV writes records with the JournalColumns header.
func WriteJournalCSV(w io.Writer, records []model.JournalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(JournalColumns); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, r := range records {
		row := []string{
			r.Sigla, r.NomeCompleto, r.ISSN, r.NomeGSM,
			intCell(r.H5Index), intCell(r.H5Median), r.EstratoH5,
			floatCell(r.CiteScore), floatCell(r.Percentil), r.AreaTematica, r.EstratoPercentil,
			floatCell(r.JIF), floatCell(r.JIFPercentil), r.CategoriaWoS, r.EstratoJIF,
			r.EstratoFinal, r.URLGSM, r.URLScopus, r.URLWoS,
			r.Erro, r.DataColeta,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "report: write csv row for %s", r.Sigla)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}
