package core

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "full name", want: "full name"},
		{name: "uppercase", input: "FULL NAME", want: "full name"},
		{name: "mixed case", input: "Full Name", want: "full name"},
		{name: "surrounding whitespace", input: "  email  ", want: "email"},
		{name: "internal whitespace run", input: "nome \t  completo", want: "nome completo"},
		{name: "accents stripped", input: "Razão Social", want: "razao social"},
		{name: "accents and case", input: "OBSERVAÇÕES", want: "observacoes"},
		{name: "cedilla", input: "endereço", want: "endereco"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolverMap(t *testing.T) {
	r := DefaultResolver()

	t.Run("equivalent spellings bind the same column", func(t *testing.T) {
		variants := []string{"Email", "EMAIL", "  e-mail ", "E-Mail"}
		for _, h := range variants {
			m := r.Map([]string{h})
			if idx, ok := m.Bound["Email"]; !ok || idx != 0 {
				t.Errorf("header %q: Bound[Email] = %v (ok=%v), want 0", h, idx, ok)
			}
		}
	})

	t.Run("portuguese and english synonyms", func(t *testing.T) {
		m := r.Map([]string{"Nome", "Empresa", "Telefone", "Cidade", "UF", "Origem"})
		want := map[string]int{
			"Full Name":    0,
			"Company Name": 1,
			"Phone":        2,
			"City":         3,
			"State":        4,
			"Source":       5,
		}
		if !reflect.DeepEqual(m.Bound, want) {
			t.Errorf("Bound = %v, want %v", m.Bound, want)
		}
		if len(m.Unmapped) != 0 {
			t.Errorf("Unmapped = %v, want empty", m.Unmapped)
		}
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		m := r.Map([]string{"Email", "E-mail", "Mail"})
		if idx := m.Bound["Email"]; idx != 0 {
			t.Errorf("Bound[Email] = %d, want 0", idx)
		}
		if !reflect.DeepEqual(m.Unmapped, []int{1, 2}) {
			t.Errorf("Unmapped = %v, want [1 2]", m.Unmapped)
		}
	})

	t.Run("unknown headers stay unmapped", func(t *testing.T) {
		m := r.Map([]string{"Lead Score", "Nome", "Budget"})
		if !reflect.DeepEqual(m.Unmapped, []int{0, 2}) {
			t.Errorf("Unmapped = %v, want [0 2]", m.Unmapped)
		}
		if idx := m.Bound["Full Name"]; idx != 1 {
			t.Errorf("Bound[Full Name] = %d, want 1", idx)
		}
	})

	t.Run("empty header is unmapped", func(t *testing.T) {
		m := r.Map([]string{"", "Nome"})
		if !reflect.DeepEqual(m.Unmapped, []int{0}) {
			t.Errorf("Unmapped = %v, want [0]", m.Unmapped)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		headers := []string{"Nome", "Email", "Lead Score"}
		a := r.Map(headers)
		b := r.Map(headers)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Map is not deterministic: %v vs %v", a, b)
		}
	})

	t.Run("alternate synonym table", func(t *testing.T) {
		alt := NewResolver(map[string]string{"kontakt": "Full Name"})
		m := alt.Map([]string{"Kontakt", "Nome"})
		if idx := m.Bound["Full Name"]; idx != 0 {
			t.Errorf("Bound[Full Name] = %d, want 0", idx)
		}
		if !reflect.DeepEqual(m.Unmapped, []int{1}) {
			t.Errorf("Unmapped = %v, want [1]", m.Unmapped)
		}
	})
}
