package core

import "testing"

func TestNormalizeEmails(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "case folded and deduplicated preserving order",
			input: "A@X.com; a@x.com,B@Y.com",
			want:  "a@x.com, b@y.com",
		},
		{
			name:  "single address",
			input: "john@example.com",
			want:  "john@example.com",
		},
		{
			name:  "whitespace separated",
			input: "a@x.com b@y.com\tc@z.com",
			want:  "a@x.com, b@y.com, c@z.com",
		},
		{
			name:  "tokens without at sign dropped",
			input: "not-an-email, a@x.com, n/a",
			want:  "a@x.com",
		},
		{
			name:  "malformed but with at sign passes through",
			input: "weird@@x",
			want:  "weird@@x",
		},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
		{name: "only separators", input: ", ; ,", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmails(tt.input); got != tt.want {
				t.Errorf("NormalizeEmails(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhones(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "brazilian mobile to E.164",
			input: "(11) 98888-7777",
			want:  "+5511988887777",
		},
		{
			name:  "already E.164",
			input: "+5511988887777",
			want:  "+5511988887777",
		},
		{
			name:  "non-numeric passes through unchanged",
			input: "N/A",
			want:  "N/A",
		},
		{
			name:  "multiple numbers comma separated",
			input: "(11) 98888-7777, (21) 97777-6666",
			want:  "+5511988887777, +5521977776666",
		},
		{
			name:  "duplicates collapse after normalization",
			input: "(11) 98888-7777; 11 98888 7777",
			want:  "+5511988887777",
		},
		{
			name:  "mixed valid and free text",
			input: "(11) 98888-7777, ramal 202x",
			want:  "+5511988887777, ramal 202x",
		},
		{
			name:  "unparseable digits fall back to trimmed original",
			input: "123",
			want:  "123",
		},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhones(tt.input, DefaultPhoneRegion); got != tt.want {
				t.Errorf("NormalizePhones(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDialable(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"11988887777", true},
		{"+5511988887777", true},
		{"", false},
		{"+", false},
		{"++55", false},
		{"55+11", false},
		{"N/A", false},
		{"12a34", false},
	}

	for _, tt := range tests {
		if got := isDialable(tt.input); got != tt.want {
			t.Errorf("isDialable(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
