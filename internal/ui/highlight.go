package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is a run of suggestion text that either matches the query or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments around every case-insensitive
// occurrence of query. The query is matched literally. An empty query yields
// the text as a single plain segment.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	if query == "" {
		return []Segment{{Text: text}}
	}
	return highlightWith(queryPattern(query), text)
}

func queryPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

func highlightWith(re *regexp.Regexp, text string) []Segment {
	if text == "" {
		return nil
	}
	if re == nil {
		return []Segment{{Text: text}}
	}
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}
	segments := make([]Segment, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// renderSegments styles matched runs with match and the rest with plain.
func renderSegments(segments []Segment, plain, match lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Match {
			b.WriteString(match.Render(s.Text))
		} else {
			b.WriteString(plain.Render(s.Text))
		}
	}
	return b.String()
}
