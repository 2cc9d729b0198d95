package homemd

import (
	"strings"
	"unicode"
)

const maxHeadingLevel = 5

// Classify decides whether aligned content is an image or freeform text.
// The first `![alt](url)` found anywhere in the content makes it an image;
// text around that image and any later images are dropped.
func Classify(content string) Content {
	trimmed := strings.TrimSpace(content)
	if d, ok := findDirective(trimmed, 0, imageRule); ok {
		return ImageContent{
			Alt: strings.TrimSpace(d.keyword),
			URL: strings.TrimSpace(d.content(trimmed)),
		}
	}
	return TextContent{Markdown: trimmed}
}

// SplitHeading reports the heading level (1-5) encoded by a leading run of
// '#' characters and returns the text with that prefix and any following
// whitespace removed. Text without a prefix returns level 0 unchanged.
// Prefixes longer than five characters are read as level 5.
func SplitHeading(text string) (int, string) {
	level := 0
	for level < len(text) && level < maxHeadingLevel && text[level] == '#' {
		level++
	}
	if level == 0 {
		return 0, text
	}
	return level, strings.TrimLeftFunc(text[level:], unicode.IsSpace)
}
