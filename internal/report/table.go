package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

// PrintConferenceTable renders a console summary of conference records.
func PrintConferenceTable(out io.Writer, records []model.ConferenceRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIGLA\tNOME\tH5\tESTRATO\tERRO")
	for _, r := range records {
		name := r.NomeGSM
		if name == "" {
			name = r.NomeCompleto
		}
		if name == "" {
			name = r.Sigla
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Sigla, truncate(name, 40), intCell(r.H5Index), r.EstratoCapes, r.Erro)
	}
	_ = w.Flush()
}

// PrintJournalTable renders a console summary of journal records.
func PrintJournalTable(out io.Writer, records []model.JournalRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIGLA\tNOME\tH5\tCITESCORE\tPERCENTIL\tJIF\tFINAL\tERRO")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Sigla, truncate(r.NomeCompleto, 35),
			intCell(r.H5Index), floatCell(r.CiteScore), floatCell(r.Percentil),
			floatCell(r.JIF), r.EstratoFinal, r.Erro)
	}
	_ = w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
