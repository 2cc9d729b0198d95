package homemd

import (
	"encoding/json"
	"strings"
)

// Align identifies the horizontal placement of an aligned block.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign maps a directive token onto an Align. Tokens other than right
// or center degrade to left so both adapters share the same fallback.
func ParseAlign(token string) Align {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case string(AlignRight):
		return AlignRight
	case string(AlignCenter):
		return AlignCenter
	default:
		return AlignLeft
	}
}

// Span is a half-open byte range [Start, End) into the cleaned body.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len reports the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// SegmentKind discriminates Segment implementations.
type SegmentKind string

const (
	SegmentMarkdown SegmentKind = "markdown"
	SegmentAligned  SegmentKind = "align"
)

// Segment is one ordered unit of a Document: either a MarkdownRun or an
// AlignedBlock. The interface is sealed.
type Segment interface {
	Kind() SegmentKind
	SourceSpan() Span
	isSegment()
}

// MarkdownRun is a contiguous span of ordinary markdown rendered without
// any positional override. Text is trimmed and never empty.
type MarkdownRun struct {
	Text string
	Span Span
}

func (MarkdownRun) Kind() SegmentKind  { return SegmentMarkdown }
func (r MarkdownRun) SourceSpan() Span { return r.Span }
func (MarkdownRun) isSegment()         {}

// MarshalJSON tags the run with its segment type.
func (r MarkdownRun) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type SegmentKind `json:"type"`
		Text string      `json:"text"`
		Span Span        `json:"span"`
	}{SegmentMarkdown, r.Text, r.Span})
}

// AlignedBlock is the product of an alignment directive.
type AlignedBlock struct {
	Align   Align
	Content Content
	Span    Span
}

func (AlignedBlock) Kind() SegmentKind  { return SegmentAligned }
func (b AlignedBlock) SourceSpan() Span { return b.Span }
func (AlignedBlock) isSegment()         {}

// MarshalJSON tags the block with its segment type.
func (b AlignedBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    SegmentKind `json:"type"`
		Align   Align       `json:"align"`
		Content Content     `json:"content"`
		Span    Span        `json:"span"`
	}{SegmentAligned, b.Align, b.Content, b.Span})
}

// ContentKind discriminates Content implementations.
type ContentKind string

const (
	ContentImage ContentKind = "image"
	ContentText  ContentKind = "text"
)

// Content is the classified inner content of an AlignedBlock. The
// interface is sealed.
type Content interface {
	Kind() ContentKind
	markdown() string
}

// ImageContent is an aligned block whose content is exactly one image.
type ImageContent struct {
	Alt string
	URL string
}

func (ImageContent) Kind() ContentKind { return ContentImage }

func (c ImageContent) markdown() string {
	return "![" + c.Alt + "](" + c.URL + ")"
}

// MarshalJSON tags the content with its kind.
func (c ImageContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ContentKind `json:"type"`
		Alt  string      `json:"alt"`
		URL  string      `json:"url"`
	}{ContentImage, c.Alt, c.URL})
}

// TextContent is freeform markdown. It may start with a heading prefix,
// which adapters resolve through SplitHeading.
type TextContent struct {
	Markdown string
}

func (TextContent) Kind() ContentKind { return ContentText }

func (c TextContent) markdown() string { return c.Markdown }

// MarshalJSON tags the content with its kind.
func (c TextContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     ContentKind `json:"type"`
		Markdown string      `json:"markdown"`
	}{ContentText, c.Markdown})
}

// Document is the parsed form of one home-page body. It is a pure function
// of the raw input and is never mutated after Parse returns.
type Document struct {
	// BackgroundURL is the raw, unfiltered background image URL. Empty
	// means the document has no background directive.
	BackgroundURL string    `json:"background_url,omitempty"`
	Segments      []Segment `json:"segments"`
}

// HasBackground reports whether a background directive was found.
func (d Document) HasBackground() bool {
	return d.BackgroundURL != ""
}

// Clone returns a copy that shares no mutable state with d.
func (d Document) Clone() Document {
	out := Document{BackgroundURL: d.BackgroundURL}
	if d.Segments != nil {
		out.Segments = make([]Segment, len(d.Segments))
		copy(out.Segments, d.Segments)
	}
	return out
}

// Markdown renders the document back into the dialect. Parsing the result
// yields the same background and segment sequence, spans aside.
func (d Document) Markdown() string {
	parts := make([]string, 0, len(d.Segments)+1)
	if d.HasBackground() {
		parts = append(parts, "!["+backgroundKeyword+"]("+d.BackgroundURL+")")
	}
	for _, segment := range d.Segments {
		switch s := segment.(type) {
		case MarkdownRun:
			parts = append(parts, s.Text)
		case AlignedBlock:
			inner := ""
			if s.Content != nil {
				inner = s.Content.markdown()
			}
			parts = append(parts, "!["+string(s.Align)+"]("+inner+")")
		}
	}
	return strings.Join(parts, "\n\n")
}
