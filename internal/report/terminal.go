package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const (
	ansiMatch = "\x1b[1;30;43m"
	ansiReset = "\x1b[0m"
)

type TextOptions struct {
	// Color wraps matches in ANSI codes; otherwise they are wrapped in « ».
	Color bool
	// SkipRawText omits the extracted text view.
	SkipRawText bool
}

// stickyWriter remembers the first write error so rendering code can stay linear.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	s.err = err
	return n, err
}

// WriteText renders r for a terminal.
func WriteText(w io.Writer, r Report, opts TextOptions) error {
	sw := &stickyWriter{w: w}

	if r.PersonName != "" {
		fmt.Fprintf(sw, "%s: %s\n", LabelSearchedPerson, r.PersonName)
		if r.Text.PersonSnippet != "" {
			fmt.Fprintf(sw, "  %s\n", r.Text.PersonSnippet)
		}
		fmt.Fprintln(sw)
	}

	heading(sw, LabelPoliciesHeading)
	if len(r.Policies) == 0 {
		fmt.Fprintln(sw, LabelNoPolicies)
	}
	for _, card := range r.Policies {
		writeCard(sw, card)
	}

	heading(sw, TabLabelStructured)
	fmt.Fprintln(sw, LabelMetadata)
	meta := newTable(sw, nil)
	meta.Append([]string{LabelTotalLength, r.Metadata.TotalLength})
	meta.Append([]string{LabelSectionCount, r.Metadata.SectionCount})
	for _, row := range r.Metadata.Additional {
		meta.Append([]string{row.Label, displayText(row.Value)})
	}
	meta.Render()
	for _, s := range r.Sections {
		fmt.Fprintf(sw, "\n### %s\n%s\n", s.Title, s.Content)
	}

	if !opts.SkipRawText {
		heading(sw, TabLabelRaw)
		if strings.TrimSpace(r.Text.Term) != "" {
			fmt.Fprintf(sw, "Búsqueda %q: %d coincidencias\n\n", r.Text.Term, r.Text.Matches)
		}
		open, closer := "«", "»"
		if opts.Color {
			open, closer = ansiMatch, ansiReset
		}
		fmt.Fprintln(sw, Join(r.Text.Segments, open, closer))
	}
	return sw.err
}

func writeCard(w io.Writer, card PolicyCard) {
	title := card.Title
	if card.HasPolicyNumber {
		title += "  [" + card.PolicyNumber + "]"
	}
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))

	writeGroup(w, card.General)
	writeGroup(w, card.Validity)
	if card.Insured != nil {
		fmt.Fprintf(w, "%s\n", card.Insured.Title)
		t := newTable(w, card.Insured.Columns)
		for _, p := range card.Insured.Rows {
			t.Append([]string{p.Name, p.Document, p.CoverageStart})
		}
		t.Render()
	}
}

func writeGroup(w io.Writer, g Group) {
	fmt.Fprintf(w, "%s\n", g.Title)
	if len(g.Rows) == 0 {
		return
	}
	t := newTable(w, nil)
	for _, row := range g.Rows {
		t.Append([]string{row.Label, displayText(row.Value)})
	}
	t.Render()
}

func displayText(d Display) string {
	if !d.IsTable() {
		return d.Text
	}
	names := make([]string, 0, len(d.People))
	for _, p := range d.People {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	if len(header) > 0 {
		t.SetAutoFormatHeaders(false)
		t.SetHeader(header)
	}
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}
