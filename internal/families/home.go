package families

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultBodyMarkdown seeds the home page of a new family.
const DefaultBodyMarkdown = `## Welcome to your family home!
Decorate this page with Markdown.

> Leave questions and requests in the group chat.
`

const (
	defaultFamilyName = "Family"
	defaultFooter     = "Footer"
)

func defaultHeaderTitle(name string) string { return "Welcome to " + name }

func defaultBodyTitle(name string) string { return name + "'s space" }

// HomeImagePath is the storage object path for an image uploaded to a
// family home page.
func HomeImagePath(familyID uuid.UUID, mimeType string, now time.Time) string {
	return fmt.Sprintf("families/%s/home/%d.%s", familyID, now.UnixMilli(), imageExtension(mimeType))
}

func imageExtension(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.Contains(mimeType, "png"):
		return "png"
	case strings.Contains(mimeType, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}

// InsertImageMarkdown inserts an image paragraph for url into body at the
// byte offset cursor and returns the new body with the cursor placed after
// the insertion. Out of range cursors are clamped, and a cursor inside a
// multi-byte character moves back to that character's first byte.
func InsertImageMarkdown(body string, cursor int, url string) (string, int) {
	cursor = max(0, min(cursor, len(body)))
	for cursor > 0 && cursor < len(body) && !utf8.RuneStart(body[cursor]) {
		cursor--
	}
	snippet := "\n\n![image](" + url + ")\n\n"
	return body[:cursor] + snippet + body[cursor:], cursor + len(snippet)
}
