package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sctr/internal/models"
	"sctr/internal/util"
)

type Tab string

const (
	TabAnalysis   Tab = "analysis"
	TabStructured Tab = "structured"
	TabRaw        Tab = "raw"
)

// ParseTab maps a query value to a tab, defaulting to the analysis view.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabStructured, TabRaw:
		return Tab(s)
	}
	return TabAnalysis
}

// Report is the full presentation of one ValidationResult.
type Report struct {
	PersonName string        `json:"person_name"`
	Policies   []PolicyCard  `json:"policies"`
	Metadata   MetadataView  `json:"metadata"`
	Sections   []SectionView `json:"sections"`
	Text       TextView      `json:"text"`
}

type MetadataView struct {
	TotalLength  string `json:"total_length"`
	SectionCount string `json:"section_count"`
	Additional   []Row  `json:"additional,omitempty"`
}

type SectionView struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TextView struct {
	Term          string    `json:"term,omitempty"`
	Segments      []Segment `json:"segments"`
	Matches       int       `json:"matches"`
	PersonSnippet string    `json:"person_snippet,omitempty"`
	Length        int       `json:"length"`
}

var numbers = message.NewPrinter(language.Spanish)

// Build renders res, highlighting term in the extracted text.
func Build(res models.ValidationResult, term string) Report {
	r := Report{
		PersonName: res.PersonName,
		Policies:   RenderSections(res.SegmentedSections.Content),
		Metadata: MetadataView{
			TotalLength:  numbers.Sprintf("%d", res.Component.Metadata.TotalLength),
			SectionCount: numbers.Sprintf("%d", res.Component.Metadata.SectionCount),
		},
		Sections: make([]SectionView, 0, len(res.Component.Sections)),
	}
	for _, f := range res.Component.Metadata.AdditionalInfo.Fields() {
		r.Metadata.Additional = append(r.Metadata.Additional, Row{Key: f.Key, Label: FormatKey(f.Key), Value: Format(f.Key, f.Value)})
	}
	for _, s := range res.Component.Sections {
		title := s.Title
		if title == "" {
			title = LabelUntitled
		}
		r.Sections = append(r.Sections, SectionView{Title: title, Content: s.Content})
	}
	r.Text = BuildText(res.ExtractedText, term, res.PersonName)
	return r
}

// BuildText highlights term over text. Only the text view needs recomputing when the
// search term changes.
func BuildText(text, term, personName string) TextView {
	segs := Highlight(text, term)
	tv := TextView{
		Term:     term,
		Segments: segs,
		Matches:  CountMatches(segs),
		Length:   len([]rune(text)),
	}
	if personName != "" {
		tv.PersonSnippet = util.MentionSnippet(text, personName, 280)
	}
	return tv
}
