package homemd

import "strings"

const (
	backgroundKeyword = "background"
	commentDelimiter  = "%%"
)

// ExtractBackground removes the first `![background](url)` directive from
// raw. It returns the trimmed URL (empty when absent) and the remaining body,
// trimmed. Later background directives are left in the body untouched.
func ExtractBackground(raw string) (string, string) {
	d, ok := findDirective(raw, 0, backgroundRule)
	if !ok {
		return "", strings.TrimSpace(raw)
	}
	url := strings.TrimSpace(d.content(raw))
	cleaned := raw[:d.start] + raw[d.end:]
	return url, strings.TrimSpace(cleaned)
}

// StripComments drops editor comments delimited by `%%`. Comments may span
// lines; an unterminated opener is kept as text.
func StripComments(raw string) string {
	if !strings.Contains(raw, commentDelimiter) {
		return raw
	}

	var out strings.Builder
	out.Grow(len(raw))

	rest := raw
	for {
		open := strings.Index(rest, commentDelimiter)
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open+len(commentDelimiter):], commentDelimiter)
		if closing < 0 {
			break
		}
		out.WriteString(rest[:open])
		rest = rest[open+len(commentDelimiter)+closing+len(commentDelimiter):]
	}
	out.WriteString(rest)
	return out.String()
}
