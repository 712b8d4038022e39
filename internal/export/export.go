package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contract-cli/internal/contract"
)

// Format selects the export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatBoth Format = "both"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatBoth:
		return Format(s), nil
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// columns defines the ordered CSV output columns.
var columns = []string{
	"contract_id",
	"summary",
	"termination_clause",
	"confidentiality_clause",
	"liability_clause",
	"status",
	"contract_length",
	"word_count",
	"summary_word_count",
}

// Results writes records to basePath with the extension(s) implied by format
// and returns the paths written.
func Results(records []contract.Record, basePath string, format Format) ([]string, error) {
	var paths []string

	if format == FormatCSV || format == FormatBoth {
		p := withExt(basePath, ".csv")
		if err := writeCSV(records, p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if format == FormatJSON || format == FormatBoth {
		p := withExt(basePath, ".json")
		if err := writeJSON(records, p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	zap.L().Info("results exported",
		zap.Int("records", len(records)),
		zap.Strings("paths", paths),
	)
	return paths, nil
}

func writeCSV(records []contract.Record, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for i := range records {
		if err := w.Write(buildRow(&records[i])); err != nil {
			return eris.Wrapf(err, "export: write row %s", records[i].ContractID)
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}

// buildRow maps a Record to a CSV row in column order.
func buildRow(r *contract.Record) []string {
	return []string{
		r.ContractID,
		r.Summary,
		r.TerminationClause,
		r.ConfidentialityClause,
		r.LiabilityClause,
		string(r.Status),
		strconv.Itoa(r.ContractLength),
		strconv.Itoa(r.WordCount),
		strconv.Itoa(r.SummaryWordCount),
	}
}

func writeJSON(records []contract.Record, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create json file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// withExt swaps basePath's extension, appending when there is none.
func withExt(basePath, ext string) string {
	if cur := filepath.Ext(basePath); cur != "" {
		return basePath[:len(basePath)-len(cur)] + ext
	}
	return basePath + ext
}
