package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleConference() model.ConferenceRecord {
	return model.ConferenceRecord{
		Sigla:        "CVPR",
		NomeCompleto: "Conference on Computer Vision and Pattern Recognition",
		NomeGSM:      "IEEE/CVF CVPR",
		H5Index:      intPtr(422),
		H5Median:     intPtr(681),
		EstratoCapes: "A1",
		URLFonte:     "https://scholar.google.com/citations?venue=cvpr",
		DataColeta:   "2026-02-10T12:00:00Z",
	}
}

func sampleJournal() model.JournalRecord {
	return model.JournalRecord{
		Sigla:            "AIJ",
		NomeCompleto:     "Artificial Intelligence",
		ISSN:             "0004-3702",
		NomeGSM:          "Artificial Intelligence",
		H5Index:          intPtr(90),
		H5Median:         intPtr(140),
		EstratoH5:        "A1",
		CiteScore:        floatPtr(11.8),
		Percentil:        floatPtr(88.0),
		AreaTematica:     "1702",
		EstratoPercentil: "A1",
		JIF:              floatPtr(5.1),
		JIFPercentil:     floatPtr(82.4),
		CategoriaWoS:     "Computer Science, Artificial Intelligence",
		EstratoJIF:       "A2",
		EstratoFinal:     "A1",
		URLGSM:           "https://scholar.google.com/citations?venue=aij",
		URLScopus:        "https://www.scopus.com/sourceid/24290",
		URLWoS:           "https://jcr.clarivate.com/jcr/journal-profile?journal=AIJ",
		DataColeta:       "2026-02-10T12:00:00Z",
	}
}

func TestWriteConferenceCSV(t *testing.T) {
	var buf bytes.Buffer
	failed := model.ConferenceRecord{
		Sigla:        "NOPE",
		NomeCompleto: "Unknown Venue",
		EstratoCapes: "N/A",
		Erro:         "NotFound: no venue matched",
		DataColeta:   "2026-02-10T12:00:00Z",
	}
	require.NoError(t, WriteConferenceCSV(&buf, []model.ConferenceRecord{sampleConference(), failed}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ConferenceColumns, rows[0])
	assert.Equal(t, []string{
		"CVPR", "Conference on Computer Vision and Pattern Recognition",
		"IEEE/CVF CVPR", "422", "681", "A1",
		"https://scholar.google.com/citations?venue=cvpr", "", "2026-02-10T12:00:00Z",
	}, rows[1])
	// Absent metrics render as empty cells, never "0".
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "N/A", rows[2][5])
	assert.Equal(t, "NotFound: no venue matched", rows[2][7])
}

func TestWriteJournalCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJournalCSV(&buf, []model.JournalRecord{sampleJournal()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, JournalColumns, rows[0])
	row := rows[1]
	assert.Equal(t, "AIJ", row[0])
	assert.Equal(t, "0004-3702", row[2])
	assert.Equal(t, "90", row[4])
	assert.Equal(t, "11.8", row[7])
	assert.Equal(t, "88.0", row[8])
	assert.Equal(t, "82.4", row[12])
	assert.Equal(t, "A1", row[15])
}

func TestWriteJournalCSV_EmptyCellsForAbsentMetrics(t *testing.T) {
	var buf bytes.Buffer
	rec := model.JournalRecord{
		Sigla:            "JX",
		NomeCompleto:     "Journal X",
		EstratoH5:        "N/A",
		EstratoPercentil: "N/A",
		EstratoJIF:       "N/A",
		EstratoFinal:     "N/A",
		DataColeta:       "2026-02-10T12:00:00Z",
	}
	require.NoError(t, WriteJournalCSV(&buf, []model.JournalRecord{rec}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	row := rows[1]
	for _, idx := range []int{4, 5, 7, 8, 11, 12} {
		assert.Equal(t, "", row[idx], "column %s should be empty", JournalColumns[idx])
	}
	assert.Equal(t, "N/A", row[15])
}

func TestWriteJSON_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []model.JournalRecord{sampleJournal()}))

	out := buf.String()
	for _, field := range []string{
		`"sigla"`, `"nome_completo"`, `"issn"`, `"nome_gsm"`,
		`"h5_index"`, `"h5_median"`, `"estrato_h5"`,
		`"citescore"`, `"percentil"`, `"area_tematica"`, `"estrato_percentil"`,
		`"jif"`, `"jif_percentil"`, `"categoria_wos"`, `"estrato_jif"`,
		`"estrato_final"`, `"url_gsm"`, `"url_scopus"`, `"url_wos"`,
		`"data_coleta"`,
	} {
		assert.Contains(t, out, field)
	}
	// URLs come through unescaped.
	assert.Contains(t, out, "journal-profile?journal=AIJ")
	assert.NotContains(t, out, `<`)
}

func TestWriteJSON_OmitsEmptyError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []model.ConferenceRecord{sampleConference()}))
	assert.NotContains(t, buf.String(), `"erro"`)
}

func TestPrintConferenceTable(t *testing.T) {
	rec := sampleConference()
	rec.NomeGSM = ""
	var buf bytes.Buffer
	PrintConferenceTable(&buf, []model.ConferenceRecord{rec})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "SIGLA")
	assert.Contains(t, lines[1], "CVPR")
	assert.Contains(t, lines[1], "422")
	assert.Contains(t, lines[1], "A1")
	// Long names are truncated for the console.
	assert.NotContains(t, lines[1], "Pattern Recognition")
}

func TestPrintJournalTable(t *testing.T) {
	var buf bytes.Buffer
	PrintJournalTable(&buf, []model.JournalRecord{sampleJournal()})

	out := buf.String()
	assert.Contains(t, out, "AIJ")
	assert.Contains(t, out, "11.8")
	assert.Contains(t, out, "88.0")
	assert.Contains(t, out, "A1")
}
