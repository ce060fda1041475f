package match

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReportRow is the flattened, tabular projection of one MatchResult.
// Column order is fixed: match_score, fit_level, match_percentage,
// present_keywords, missing_keywords.
type ReportRow struct {
	MatchScore      float64 `json:"match_score"`
	FitLevel        string  `json:"fit_level"`
	MatchPercentage float64 `json:"match_percentage"`
	PresentKeywords string  `json:"present_keywords"`
	MissingKeywords string  `json:"missing_keywords"`
}

// reportHeader is the fixed export column order.
var reportHeader = []string{"match_score", "fit_level", "match_percentage", "present_keywords", "missing_keywords"}

// ToRow projects a MatchResult into its tabular form. Purely
// structural: nothing is recomputed.
func ToRow(result MatchResult) ReportRow {
	return ReportRow{
		MatchScore:      result.MatchScore,
		FitLevel:        string(result.FitLevel),
		MatchPercentage: result.KeywordAnalysis.MatchPercentage,
		PresentKeywords: joinTerms(result.KeywordAnalysis.Present),
		MissingKeywords: joinTerms(result.KeywordAnalysis.Missing),
	}
}

// ToRows projects a batch of results, preserving input order.
func ToRows(results []MatchResult) []ReportRow {
	rows := make([]ReportRow, len(results))
	for i, r := range results {
		rows[i] = ToRow(r)
	}
	return rows
}

// WriteCSV serializes rows to the given writer with a header line. The
// writer is the caller's sink; this package performs no file I/O of its
// own.
func WriteCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			fmt.Sprintf("%.2f", row.MatchScore),
			row.FitLevel,
			fmt.Sprintf("%.2f", row.MatchPercentage),
			row.PresentKeywords,
			row.MissingKeywords,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
