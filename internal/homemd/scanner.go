package homemd

import "strings"

// directive locates one `![keyword](content)` occurrence in a source string.
// All offsets are byte offsets into that source.
type directive struct {
	start        int
	end          int
	keyword      string
	contentStart int
	contentEnd   int
}

func (d directive) content(src string) string {
	return src[d.contentStart:d.contentEnd]
}

// scanRule tunes the scanner for one directive family.
type scanRule struct {
	// accept reports whether the bracketed keyword opens a directive.
	accept func(keyword string) bool
	// maxKeyword bounds the search for the closing bracket. Zero means
	// unbounded.
	maxKeyword int
	// multiline allows the parenthesised content to cross newlines.
	multiline bool
	// holdDoubleClose stops a ")" directly followed by another ")" from
	// closing the directive, so "![right](smile :))" keeps the smiley.
	holdDoubleClose bool
	// firstCloseFallback closes unbalanced content at the first eligible
	// ")" instead of rejecting the directive.
	firstCloseFallback bool
}

// findDirective returns the first directive at or after from that
// satisfies rule. Content ends at the parenthesis that balances the opening
// one, so nested image markdown never closes the outer directive early.
// Unbalanced content falls back to the first eligible ")" when the rule
// allows it.
func findDirective(src string, from int, rule scanRule) (directive, bool) {
	for pos := from; pos < len(src); {
		idx := strings.Index(src[pos:], "![")
		if idx < 0 {
			return directive{}, false
		}
		start := pos + idx
		if d, ok := scanDirectiveAt(src, start, rule); ok {
			return d, true
		}
		pos = start + 2
	}
	return directive{}, false
}

// scanDirectiveAt attempts to read a directive starting exactly at start,
// which must point at "![".
func scanDirectiveAt(src string, start int, rule scanRule) (directive, bool) {
	if !strings.HasPrefix(src[start:], "![") {
		return directive{}, false
	}
	keywordStart := start + 2

	window := src[keywordStart:]
	if rule.maxKeyword > 0 && len(window) > rule.maxKeyword+1 {
		window = window[:rule.maxKeyword+1]
	}
	closeBracket := strings.IndexByte(window, ']')
	if closeBracket < 0 {
		return directive{}, false
	}
	keyword := src[keywordStart : keywordStart+closeBracket]
	if rule.accept != nil && !rule.accept(keyword) {
		return directive{}, false
	}

	open := keywordStart + closeBracket + 1
	if open >= len(src) || src[open] != '(' {
		return directive{}, false
	}

	contentStart := open + 1
	closeAt := func(i int) (directive, bool) {
		return directive{
			start:        start,
			end:          i + 1,
			keyword:      keyword,
			contentStart: contentStart,
			contentEnd:   i,
		}, true
	}
	fallback := func(first int) (directive, bool) {
		if rule.firstCloseFallback && first >= 0 {
			return closeAt(first)
		}
		return directive{}, false
	}

	depth := 1
	firstClose := -1
	for i := contentStart; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if rule.holdDoubleClose && i+1 < len(src) && src[i+1] == ')' {
				continue
			}
			if depth <= 0 {
				return closeAt(i)
			}
			if firstClose < 0 {
				firstClose = i
			}
		case '\n':
			if !rule.multiline {
				return fallback(firstClose)
			}
		}
	}
	return fallback(firstClose)
}

func keywordMatcher(keywords ...string) func(string) bool {
	return func(keyword string) bool {
		for _, candidate := range keywords {
			if strings.EqualFold(keyword, candidate) {
				return true
			}
		}
		return false
	}
}

const maxDirectiveKeyword = len(backgroundKeyword)

var (
	alignRule = scanRule{
		accept:     keywordMatcher(string(AlignLeft), string(AlignCenter), string(AlignRight)),
		maxKeyword:         maxDirectiveKeyword,
		multiline:          true,
		holdDoubleClose:    true,
		firstCloseFallback: true,
	}
	backgroundRule = scanRule{
		accept:             keywordMatcher(backgroundKeyword),
		maxKeyword:         maxDirectiveKeyword,
		firstCloseFallback: true,
	}
	imageRule = scanRule{
		accept: func(alt string) bool {
			return !strings.ContainsAny(alt, "\r\n")
		},
		firstCloseFallback: true,
	}
)
