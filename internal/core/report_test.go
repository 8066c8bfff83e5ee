package core

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestBuildReport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		totalRows    int
		records      []Record
		wantPctEmail float64
		wantPctPhone float64
		wantRowsOut  int
	}{
		{
			name:      "half with email",
			totalRows: 4,
			records: []Record{
				{Email: "a@x.com", Phone: "+5511988887777"},
				{Email: "b@y.com"},
				{Phone: "  "}, // whitespace-only counts as empty
				{},
			},
			wantPctEmail: 50.0,
			wantPctPhone: 25.0,
			wantRowsOut:  4,
		},
		{
			name:         "zero rows avoids division by zero",
			totalRows:    0,
			records:      nil,
			wantPctEmail: 0,
			wantPctPhone: 0,
			wantRowsOut:  0,
		},
		{
			name:      "rounding to one decimal",
			totalRows: 3,
			records: []Record{
				{Email: "a@x.com"},
				{},
				{},
			},
			wantPctEmail: 33.3,
			wantPctPhone: 0,
			wantRowsOut:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildReport(tt.totalRows, tt.records, now)
			if r.TotalRows != tt.totalRows {
				t.Errorf("TotalRows = %d, want %d", r.TotalRows, tt.totalRows)
			}
			if r.RowsOutput != tt.wantRowsOut {
				t.Errorf("RowsOutput = %d, want %d", r.RowsOutput, tt.wantRowsOut)
			}
			if r.PctWithEmail != tt.wantPctEmail {
				t.Errorf("PctWithEmail = %v, want %v", r.PctWithEmail, tt.wantPctEmail)
			}
			if r.PctWithPhone != tt.wantPctPhone {
				t.Errorf("PctWithPhone = %v, want %v", r.PctWithPhone, tt.wantPctPhone)
			}
			if r.CreatedAt != "2025-06-01T12:00:00Z" {
				t.Errorf("CreatedAt = %q, want RFC3339 UTC", r.CreatedAt)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	records := make([]Record, 30)
	for i := range records {
		records[i].FullName = "person"
	}

	if got := len(Preview(records)); got != PreviewRows {
		t.Errorf("Preview of 30 records has %d rows, want %d", got, PreviewRows)
	}
	if got := len(Preview(records[:5])); got != 5 {
		t.Errorf("Preview of 5 records has %d rows, want 5", got)
	}
	if got := len(Preview(nil)); got != 0 {
		t.Errorf("Preview of nil has %d rows, want 0", got)
	}
}

func TestEncodeCSV(t *testing.T) {
	data, err := EncodeCSV([]Record{
		{FullName: "Maria Silva", Email: "maria@acme.com", Notes: "VIP | Lead Score: 87"},
	})
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("\xef\xbb\xbf")) {
		t.Error("output does not start with UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(data[3:]), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	wantHeader := strings.Join(TargetColumns, ",")
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.Contains(lines[1], "Maria Silva") || !strings.Contains(lines[1], "maria@acme.com") {
		t.Errorf("row = %q, missing expected fields", lines[1])
	}
}
