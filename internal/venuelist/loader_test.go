package venuelist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capes-metrics/qualis-cli/internal/model"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConferences(t *testing.T) {
	path := writeList(t, `# conference list
CVPR,Conference on Computer Vision and Pattern Recognition

ICSE,International Conference on Software Engineering
SBES
`)

	venues, err := LoadConferences(path)
	require.NoError(t, err)
	require.Len(t, venues, 3)

	assert.Equal(t, "CVPR", venues[0].Code)
	assert.Equal(t, "Conference on Computer Vision and Pattern Recognition", venues[0].FullName)
	assert.Equal(t, model.KindConference, venues[0].Kind)

	assert.Equal(t, "ICSE", venues[1].Code)

	// A bare code is still a usable venue.
	assert.Equal(t, "SBES", venues[2].Code)
	assert.Empty(t, venues[2].FullName)
}

func TestLoadConferences_CommaInName(t *testing.T) {
	path := writeList(t, "NEURIPS,Conference on Neural Information Processing Systems, Main Track\n")

	venues, err := LoadConferences(path)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	// Only the first comma splits; the rest stays in the name.
	assert.Equal(t, "Conference on Neural Information Processing Systems, Main Track", venues[0].FullName)
}

func TestLoadConferences_OrderAndDuplicatesPreserved(t *testing.T) {
	path := writeList(t, "B,Beta\nA,Alpha\nB,Beta\n")

	venues, err := LoadConferences(path)
	require.NoError(t, err)
	require.Len(t, venues, 3)
	assert.Equal(t, "B", venues[0].Code)
	assert.Equal(t, "A", venues[1].Code)
	assert.Equal(t, "B", venues[2].Code)
}

func TestLoadConferences_MissingFile(t *testing.T) {
	_, err := LoadConferences(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "venuelist")
}

func TestLoadJournals(t *testing.T) {
	path := writeList(t, `# journal list
AIJ,Artificial Intelligence,0004-3702
TSE,IEEE Transactions on Software Engineering,0098-5589
JSS,,
`)

	venues, err := LoadJournals(path)
	require.NoError(t, err)
	require.Len(t, venues, 3)

	assert.Equal(t, "AIJ", venues[0].Code)
	assert.Equal(t, "Artificial Intelligence", venues[0].FullName)
	assert.Equal(t, "0004-3702", venues[0].ISSN)
	assert.Equal(t, model.KindJournal, venues[0].Kind)

	// Empty full name falls back to the code; empty ISSN stays empty.
	assert.Equal(t, "JSS", venues[2].FullName)
	assert.Empty(t, venues[2].ISSN)
}

func TestLoadJournals_MalformedISSNKept(t *testing.T) {
	path := writeList(t, "XJ,Example Journal,not-an-issn\n")

	venues, err := LoadJournals(path)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	// Kept as-is; the metered clients decide what to do with it.
	assert.Equal(t, "not-an-issn", venues[0].ISSN)
}

func TestLoadJournals_ISSNWithXCheckDigit(t *testing.T) {
	path := writeList(t, "NAT,Nature,2041-172X\n")

	venues, err := LoadJournals(path)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "2041-172X", venues[0].ISSN)
}

func TestLoadJournals_WhitespaceTrimmed(t *testing.T) {
	path := writeList(t, "  AIJ ,  Artificial Intelligence , 0004-3702 \n")

	venues, err := LoadJournals(path)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "AIJ", venues[0].Code)
	assert.Equal(t, "Artificial Intelligence", venues[0].FullName)
	assert.Equal(t, "0004-3702", venues[0].ISSN)
}
