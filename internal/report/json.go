package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// WriteJSON pretty-prints records as a JSON array.
func WriteJSON(w io.Writer, records any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}
