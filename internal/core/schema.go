// Package core implements the lead-list conversion pipeline and the job
// lifecycle that drives it. It has no HTTP or database dependencies; the
// persistence, blob storage, and dispatch queue collaborators are injected
// through the interfaces declared in job.go.
package core

// TargetColumns is the fixed, ordered schema of the output CSV. Every
// converted record has exactly these columns, in this order.
var TargetColumns = []string{
	"Full Name",
	"Company Name",
	"Email",
	"Additional Emails",
	"Phone",
	"Additional Phone Numbers",
	"Website",
	"City",
	"State",
	"Tags",
	"Notes",
	"Source",
}

// DefaultSynonyms maps normalized source headers (Portuguese and English
// spellings) to target columns. Many headers resolve to the same column.
// Keys must be in normalized form (lowercase, single spaces, no diacritics)
// because lookup happens after NormalizeHeader. The table is static
// configuration; NewResolver takes it as a value so tests can substitute
// their own.
var DefaultSynonyms = map[string]string{
	"full name":     "Full Name",
	"nome":          "Full Name",
	"name":          "Full Name",
	"nome completo": "Full Name",
	"contato":       "Full Name",

	"company name": "Company Name",
	"company":      "Company Name",
	"empresa":      "Company Name",
	"razao social": "Company Name",

	"email":    "Email",
	"e-mail":   "Email",
	"e-mail 1": "Email",
	"mail":     "Email",

	"additional emails": "Additional Emails",
	"emails":            "Additional Emails",

	"phone":    "Phone",
	"telefone": "Phone",
	"celular":  "Phone",
	"fone":     "Phone",
	"mobile":   "Phone",

	"additional phone numbers": "Additional Phone Numbers",
	"telefones":                "Additional Phone Numbers",

	"website": "Website",
	"site":    "Website",
	"url":     "Website",

	"city":   "City",
	"cidade": "City",

	"state":  "State",
	"estado": "State",
	"uf":     "State",

	"tags": "Tags",

	"notes":       "Notes",
	"notas":       "Notes",
	"observacoes": "Notes",

	"source": "Source",
	"origem": "Source",
}

// emailColumns and phoneColumns select the field normalizer applied during
// row transformation. Every other column passes through as a trimmed string.
var (
	emailColumns = map[string]bool{"Email": true, "Additional Emails": true}
	phoneColumns = map[string]bool{"Phone": true, "Additional Phone Numbers": true}
)
