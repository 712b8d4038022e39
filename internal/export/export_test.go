package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contract-cli/internal/contract"
)

func sampleRecords() []contract.Record {
	return []contract.Record{
		{
			ContractID:            "supply_agreement",
			Summary:               "A supply agreement between a vendor and a buyer.",
			TerminationClause:     "Either party may terminate upon thirty days notice.",
			ConfidentialityClause: contract.ValueNotFound,
			LiabilityClause:       "Liability is capped at fees paid.",
			ContractLength:        5400,
			WordCount:             900,
			SummaryWordCount:      8,
			Status:                contract.StatusSuccess,
		},
		{
			ContractID:            "broken_scan",
			Summary:               "Error: pdftotext failed",
			TerminationClause:     contract.ValueError,
			ConfidentialityClause: contract.ValueError,
			LiabilityClause:       contract.ValueError,
			Status:                contract.StatusError,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "json", "both"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestResultsCSV(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results.csv")

	paths, err := Results(sampleRecords(), base, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, []string{base}, paths)

	f, err := os.Open(base)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, columns, rows[0])
	assert.Equal(t, []string{
		"supply_agreement",
		"A supply agreement between a vendor and a buyer.",
		"Either party may terminate upon thirty days notice.",
		contract.ValueNotFound,
		"Liability is capped at fees paid.",
		"success",
		"5400", "900", "8",
	}, rows[1])
	assert.Equal(t, "broken_scan", rows[2][0])
	assert.Equal(t, "error", rows[2][5])
}

func TestResultsJSON(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results.json")

	paths, err := Results(sampleRecords(), base, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []string{base}, paths)

	data, err := os.ReadFile(base)
	require.NoError(t, err)

	var got []contract.Record
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, sampleRecords(), got)
}

func TestResultsBoth(t *testing.T) {
	base := filepath.Join(t.TempDir(), "results.csv")

	paths, err := Results(sampleRecords(), base, FormatBoth)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.FileExists(t, paths[0])
	assert.FileExists(t, paths[1])
	assert.Equal(t, ".csv", filepath.Ext(paths[0]))
	assert.Equal(t, ".json", filepath.Ext(paths[1]))
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "out.json", withExt("out.csv", ".json"))
	assert.Equal(t, "out.csv", withExt("out", ".csv"))
	assert.Equal(t, filepath.Join("a", "b.json"), withExt(filepath.Join("a", "b.csv"), ".json"))
}
