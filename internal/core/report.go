package core

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"time"
)

// PreviewRows is the number of records included in the preview artifact.
const PreviewRows = 20

// Report holds the quality metrics computed from a conversion. It is written
// once per job and never mutated afterwards.
type Report struct {
	TotalRows    int     `json:"total_rows"`
	RowsOutput   int     `json:"rows_output"`
	PctWithEmail float64 `json:"pct_with_email"`
	PctWithPhone float64 `json:"pct_with_phone"`
	CreatedAt    string  `json:"created_at"`
}

// BuildReport computes the quality metrics for a record set. Percentages are
// rounded to one decimal and are 0 when there are no output rows.
func BuildReport(totalRows int, records []Record, now time.Time) Report {
	var withEmail, withPhone int
	for _, rec := range records {
		if strings.TrimSpace(rec.Email) != "" {
			withEmail++
		}
		if strings.TrimSpace(rec.Phone) != "" {
			withPhone++
		}
	}

	r := Report{
		TotalRows:  totalRows,
		RowsOutput: len(records),
		CreatedAt:  now.UTC().Format(time.RFC3339),
	}
	if r.RowsOutput > 0 {
		r.PctWithEmail = round1(100 * float64(withEmail) / float64(r.RowsOutput))
		r.PctWithPhone = round1(100 * float64(withPhone) / float64(r.RowsOutput))
	}
	return r
}

// Preview returns the first PreviewRows records verbatim.
func Preview(records []Record) []Record {
	if len(records) > PreviewRows {
		records = records[:PreviewRows]
	}
	return records
}

// EncodeCSV serializes records as the output artifact: UTF-8 with a BOM (so
// spreadsheet tools pick the right encoding), comma-delimited, header row
// equal to TargetColumns.
func EncodeCSV(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xef\xbb\xbf")

	w := csv.NewWriter(&buf)
	if err := w.Write(TargetColumns); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
