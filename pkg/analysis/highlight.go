package analysis

import (
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"
)

// Span is a byte range [Start, End) of a text.
type Span struct {
	Start int
	End   int
}

// Highlighter finds every case-insensitive occurrence of a fixed word set.
type Highlighter struct {
	ac *ahocorasick.Automaton
}

// NewHighlighter compiles words into a single automaton. Blank words are ignored.
func NewHighlighter(words ...string) (*Highlighter, error) {
	patterns := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		patterns = append(patterns, w)
	}
	if len(patterns) == 0 {
		return &Highlighter{}, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	return &Highlighter{ac: automaton}, nil
}

// Spans returns the merged, ordered spans of every match in text. Texts whose
// lowercase form changes byte length are not highlighted.
func (h *Highlighter) Spans(text string) []Span {
	if h == nil || h.ac == nil {
		return nil
	}
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		return nil
	}

	matches := h.ac.FindAllOverlapping([]byte(lower))
	if len(matches) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		if m.Start < 0 || m.End > len(text) || m.Start >= m.End {
			continue
		}
		spans = append(spans, Span{Start: m.Start, End: m.End})
	}
	return mergeSpans(spans)
}

func mergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	merged := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Highlight rewrites text with mark applied to each span.
func Highlight(text string, spans []Span, mark func(string) string) string {
	if len(spans) == 0 {
		return text
	}
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(text) {
			continue
		}
		b.WriteString(text[pos:s.Start])
		b.WriteString(mark(text[s.Start:s.End]))
		pos = s.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
