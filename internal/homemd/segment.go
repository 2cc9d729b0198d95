package homemd

import (
	"strings"
	"unicode"
)

// Segments splits a cleaned body (background already removed) into ordered
// segments. Alignment directives become AlignedBlocks; non-blank text
// around them becomes MarkdownRuns. Directive content is opaque: it is
// classified but never scanned for further directives.
func Segments(cleaned string) []Segment {
	var segments []Segment

	last := 0
	for pos := 0; pos < len(cleaned); {
		d, ok := findDirective(cleaned, pos, alignRule)
		if !ok {
			break
		}
		segments = appendRun(segments, cleaned, last, d.start)
		segments = append(segments, AlignedBlock{
			Align:   ParseAlign(d.keyword),
			Content: Classify(d.content(cleaned)),
			Span:    Span{Start: d.start, End: d.end},
		})
		last = d.end
		pos = d.end
	}
	return appendRun(segments, cleaned, last, len(cleaned))
}

// appendRun emits src[start:end] as a MarkdownRun unless it is blank. The
// run's span is narrowed to the trimmed text.
func appendRun(segments []Segment, src string, start, end int) []Segment {
	if start >= end {
		return segments
	}
	raw := src[start:end]
	text := strings.TrimSpace(raw)
	if text == "" {
		return segments
	}
	offset := start + len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	return append(segments, MarkdownRun{
		Text: text,
		Span: Span{Start: offset, End: offset + len(text)},
	})
}
