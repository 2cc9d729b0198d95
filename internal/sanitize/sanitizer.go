// Package sanitize reduces rendered markdown HTML to an allow-listed subset
// of tags, attributes, URL schemes and inline styles.
package sanitize

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-famhome/internal/render/style"
)

// ErrURLNotPermitted is returned by ValidateURL for disallowed schemes.
var ErrURLNotPermitted = errors.New("sanitize: url scheme not permitted")

// Policy lists what survives sanitization.
type Policy struct {
	Tags       map[atom.Atom]struct{}
	Attributes map[string]struct{}
	Schemes    map[string]struct{}
}

// DefaultPolicy allows headings h1-h5, paragraphs, breaks, emphasis, lists,
// rules, links, images, spans and divs with href, src, alt, title, target,
// rel and style attributes. Relative, http, https, app, mailto and tel URLs
// are accepted.
func DefaultPolicy() Policy {
	return Policy{
		Tags: set(
			atom.H1, atom.H2, atom.H3, atom.H4, atom.H5,
			atom.P, atom.Br, atom.Strong, atom.Em,
			atom.Ul, atom.Ol, atom.Li, atom.Hr,
			atom.A, atom.Img, atom.Span, atom.Div,
		),
		Attributes: set("href", "src", "alt", "title", "target", "rel", "style"),
		Schemes:    set("", "http", "https", "app", "mailto", "tel"),
	}
}

func set[T comparable](values ...T) map[T]struct{} {
	out := make(map[T]struct{}, len(values))
	for _, value := range values {
		out[value] = struct{}{}
	}
	return out
}

// dropped elements are removed together with everything inside them.
var dropped = set(
	atom.Script, atom.Style, atom.Iframe, atom.Object, atom.Embed,
	atom.Template, atom.Noscript, atom.Textarea, atom.Select, atom.Title,
)

// Sanitizer applies a Policy. It holds no mutable state and is safe for
// concurrent use.
type Sanitizer struct {
	policy Policy
}

// New returns a sanitizer for policy.
func New(policy Policy) *Sanitizer {
	return &Sanitizer{policy: policy}
}

// NewDefault returns a sanitizer for DefaultPolicy.
func NewDefault() *Sanitizer {
	return New(DefaultPolicy())
}

// Sanitize cleans an HTML fragment and renders it back to a string.
func (s *Sanitizer) Sanitize(fragment string) (string, error) {
	nodes, err := s.Fragment(fragment)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, node := range nodes {
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("sanitize render: %w", err)
		}
	}
	return buf.String(), nil
}

// Fragment parses fragment in a body context and returns the cleaned,
// detached top-level nodes.
func (s *Sanitizer) Fragment(fragment string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("sanitize parse: %w", err)
	}

	holder := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, node := range nodes {
		holder.AppendChild(node)
	}
	s.cleanChildren(holder)

	var out []*html.Node
	for child := holder.FirstChild; child != nil; {
		next := child.NextSibling
		holder.RemoveChild(child)
		out = append(out, child)
		child = next
	}
	return out, nil
}

// Clean sanitizes the children of root in place. root itself is kept.
func (s *Sanitizer) Clean(root *html.Node) {
	if root != nil {
		s.cleanChildren(root)
	}
}

func (s *Sanitizer) cleanChildren(parent *html.Node) {
	for child := parent.FirstChild; child != nil; {
		next := child.NextSibling

		switch child.Type {
		case html.TextNode:
		case html.ElementNode:
			if _, drop := dropped[child.DataAtom]; drop {
				parent.RemoveChild(child)
				break
			}
			s.cleanChildren(child)
			if _, ok := s.policy.Tags[child.DataAtom]; ok && child.Namespace == "" {
				child.Attr = s.cleanAttributes(child.Attr)
				break
			}
			unwrap(parent, child)
		default:
			parent.RemoveChild(child)
		}

		child = next
	}
}

// unwrap replaces node with its children.
func unwrap(parent, node *html.Node) {
	for grandchild := node.FirstChild; grandchild != nil; {
		next := grandchild.NextSibling
		node.RemoveChild(grandchild)
		parent.InsertBefore(grandchild, node)
		grandchild = next
	}
	parent.RemoveChild(node)
}

func (s *Sanitizer) cleanAttributes(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, attr := range attrs {
		key := strings.ToLower(attr.Key)
		if attr.Namespace != "" || strings.HasPrefix(key, "on") {
			continue
		}
		if _, ok := s.policy.Attributes[key]; !ok {
			continue
		}

		value := attr.Val
		switch key {
		case "href", "src":
			value = strings.TrimSpace(value)
			if s.ValidateURL(value) != nil {
				continue
			}
		case "style":
			value = FilterStyle(value)
			if value == "" {
				continue
			}
		}
		kept = append(kept, html.Attribute{Key: key, Val: value})
	}
	return kept
}

// ValidateURL reports an error unless raw uses an allowed scheme. Empty
// values are rejected.
func (s *Sanitizer) ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrURLNotPermitted)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotPermitted, err)
	}
	if _, ok := s.policy.Schemes[parsed.Scheme]; !ok {
		return fmt.Errorf("%w: %q", ErrURLNotPermitted, parsed.Scheme)
	}
	return nil
}

var (
	blockedStyleValues     = []string{"url(", "expression(", "javascript:", "vbscript:"}
	blockedStyleProperties = set("behavior", "-moz-binding")
)

// FilterStyle drops inline declarations that can load resources or run
// script, returning the remaining declarations.
func FilterStyle(value string) string {
	decls := style.ParseDeclarations(value)
	decls.Filter(func(property, value string) bool {
		if _, blocked := blockedStyleProperties[property]; blocked {
			return false
		}
		compact := strings.ToLower(strings.Join(strings.Fields(value), ""))
		for _, needle := range blockedStyleValues {
			if strings.Contains(compact, needle) {
				return false
			}
		}
		return true
	})
	return decls.String()
}
