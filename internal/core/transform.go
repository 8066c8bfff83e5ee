package core

import "strings"

// Record is one output row in the target schema. JSON tags match the output
// CSV headers so the preview artifact mirrors the download column-for-column.
type Record struct {
	FullName         string `json:"Full Name"`
	CompanyName      string `json:"Company Name"`
	Email            string `json:"Email"`
	AdditionalEmails string `json:"Additional Emails"`
	Phone            string `json:"Phone"`
	AdditionalPhones string `json:"Additional Phone Numbers"`
	Website          string `json:"Website"`
	City             string `json:"City"`
	State            string `json:"State"`
	Tags             string `json:"Tags"`
	Notes            string `json:"Notes"`
	Source           string `json:"Source"`
}

// Values returns the record's fields in TargetColumns order.
func (r Record) Values() []string {
	return []string{
		r.FullName, r.CompanyName, r.Email, r.AdditionalEmails,
		r.Phone, r.AdditionalPhones, r.Website, r.City,
		r.State, r.Tags, r.Notes, r.Source,
	}
}

func (r *Record) set(column, value string) {
	switch column {
	case "Full Name":
		r.FullName = value
	case "Company Name":
		r.CompanyName = value
	case "Email":
		r.Email = value
	case "Additional Emails":
		r.AdditionalEmails = value
	case "Phone":
		r.Phone = value
	case "Additional Phone Numbers":
		r.AdditionalPhones = value
	case "Website":
		r.Website = value
	case "City":
		r.City = value
	case "State":
		r.State = value
	case "Tags":
		r.Tags = value
	case "Notes":
		r.Notes = value
	case "Source":
		r.Source = value
	}
}

// Transformer converts source tables into target-schema records.
type Transformer struct {
	resolver *Resolver
	region   string
}

// NewTransformer creates a transformer. An empty region falls back to
// DefaultPhoneRegion.
func NewTransformer(resolver *Resolver, region string) *Transformer {
	if region == "" {
		region = DefaultPhoneRegion
	}
	return &Transformer{resolver: resolver, region: region}
}

// Transform converts every source row into exactly one Record. Rows are
// never skipped: len(result) == len(table.Rows) always holds, and values in
// columns the resolver could not map are folded into Notes instead of being
// dropped.
func (t *Transformer) Transform(table Table) []Record {
	mapping := t.resolver.Map(table.Headers)

	records := make([]Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, t.transformRow(row, table.Headers, mapping))
	}
	return records
}

func (t *Transformer) transformRow(row []string, headers []string, mapping ColumnMapping) Record {
	var rec Record

	for _, target := range TargetColumns {
		idx, ok := mapping.Bound[target]
		if !ok {
			continue
		}
		val := strings.TrimSpace(cell(row, idx))

		switch {
		case emailColumns[target]:
			rec.set(target, NormalizeEmails(val))
		case phoneColumns[target]:
			rec.set(target, NormalizePhones(val, t.region))
		default:
			rec.set(target, val)
		}
	}

	// Fold unmapped columns into Notes as "<header>: <value>" entries,
	// appended after any mapped notes content.
	var parts []string
	for _, idx := range mapping.Unmapped {
		val := strings.TrimSpace(cell(row, idx))
		if val == "" {
			continue
		}
		parts = append(parts, cell(headers, idx)+": "+val)
	}
	if len(parts) > 0 {
		rec.Notes = strings.Trim(rec.Notes+" | "+strings.Join(parts, " | "), " |")
	}

	return rec
}

// cell returns row[idx], tolerating short rows from ragged CSV input.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
