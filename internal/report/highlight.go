package report

import (
	"regexp"
	"strings"
)

type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// Highlight splits text into plain and match segments for a case-insensitive literal
// search of term. Match segments keep the casing of text. Concatenating the segments
// always yields text. A blank term returns text as one plain segment.
func Highlight(text, term string) []Segment {
	if strings.TrimSpace(term) == "" {
		return []Segment{{Text: text}}
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return []Segment{{Text: text}}
	}
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}
	out := make([]Segment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			out = append(out, Segment{Text: text[prev:loc[0]]})
		}
		out = append(out, Segment{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	if prev < len(text) {
		out = append(out, Segment{Text: text[prev:]})
	}
	return out
}

func CountMatches(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if s.Match {
			n++
		}
	}
	return n
}

// Join concatenates segments, wrapping matches with open and close.
func Join(segs []Segment, open, close string) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(open)
			b.WriteString(s.Text)
			b.WriteString(close)
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
