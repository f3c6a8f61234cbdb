// Package venuelist loads venue identity lists from delimited text files.
// Lines are `code[,full_name[,issn]]`; blank lines and `#` comments are
// skipped. Order is preserved and duplicates are not collapsed — the
// pipeline processes what it is given.
package venuelist

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

var issnRe = regexp.MustCompile(`^\d{4}-\d{3}[\dxX]$`)

// LoadConferences reads `code[,full_name]` lines.
func LoadConferences(path string) ([]model.VenueIdentity, error) {
	lines, err := dataLines(path)
	if err != nil {
		return nil, err
	}

	venues := make([]model.VenueIdentity, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ",", 2)
		v := model.VenueIdentity{
			Code: strings.TrimSpace(parts[0]),
			Kind: model.KindConference,
		}
		if len(parts) > 1 {
			v.FullName = strings.TrimSpace(parts[1])
		}
		if v.Code == "" {
			continue
		}
		venues = append(venues, v)
	}
	return venues, nil
}

// LoadJournals reads `code,full_name[,issn]` lines. A journal without a full
// name falls back to its code. Malformed ISSNs are kept but logged — the
// metered sources will reject them with their own error kinds.
func LoadJournals(path string) ([]model.VenueIdentity, error) {
	lines, err := dataLines(path)
	if err != nil {
		return nil, err
	}

	venues := make([]model.VenueIdentity, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ",", 3)
		v := model.VenueIdentity{
			Code: strings.TrimSpace(parts[0]),
			Kind: model.KindJournal,
		}
		if len(parts) > 1 {
			v.FullName = strings.TrimSpace(parts[1])
		}
		if v.FullName == "" {
			v.FullName = v.Code
		}
		if len(parts) > 2 {
			v.ISSN = strings.TrimSpace(parts[2])
		}
		if v.Code == "" {
			continue
		}
		if v.ISSN != "" && !issnRe.MatchString(v.ISSN) {
			zap.L().Warn("journal has malformed issn",
				zap.String("code", v.Code),
				zap.String("issn", v.ISSN),
			)
		}
		venues = append(venues, v)
	}
	return venues, nil
}

func dataLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "venuelist: open %s", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "venuelist: read %s", path)
	}
	return lines, nil
}
