package report

import (
	"strings"
	"unicode/utf8"

	"sctr/internal/models"
)

// Display is a formatted value: plain text, or a person table when People is non-nil.
type Display struct {
	Text   string      `json:"text,omitempty"`
	People []PersonRow `json:"people,omitempty"`
}

func (d Display) IsTable() bool { return d.People != nil }

type PersonRow struct {
	Name          string `json:"name"`
	Document      string `json:"document"`
	CoverageStart string `json:"coverage_start"`
}

// Format renders one field value by its semantic type.
func Format(key string, v models.Value) Display {
	if v.IsNull() {
		return Display{Text: Placeholder}
	}
	if v.IsList() {
		if key == models.KeyPersonByPolicy && v.Len() > 0 {
			return Display{People: PersonRows(peopleOf(v))}
		}
		joined := strings.Join(listItems(v), ", ")
		if joined == "" {
			return Display{Text: Placeholder}
		}
		return Display{Text: joined}
	}
	return Display{Text: v.Text}
}

// PersonRows builds table rows in list order. A missing coverage start shows the placeholder.
func PersonRows(people []models.PersonRecord) []PersonRow {
	rows := make([]PersonRow, 0, len(people))
	for _, p := range people {
		start := p.CoverageStartDate
		if start == "" {
			start = Placeholder
		}
		rows = append(rows, PersonRow{Name: p.FullName, Document: p.DocumentNumber, CoverageStart: start})
	}
	return rows
}

func peopleOf(v models.Value) []models.PersonRecord {
	if v.Kind == models.KindPeople {
		return v.People
	}
	// A plain list under person_by_policy has no person fields.
	return make([]models.PersonRecord, len(v.Items))
}

func listItems(v models.Value) []string {
	if v.Kind == models.KindList {
		return v.Items
	}
	out := make([]string, 0, len(v.People))
	for _, p := range v.People {
		out = append(out, p.FullName)
	}
	return out
}

// FormatKey humanizes a field key: underscores become spaces, every ASCII uppercase
// letter gets a space before it, and the first character is upper-cased.
func FormatKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		switch {
		case r == '_':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || isLineTerminator(r) {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
