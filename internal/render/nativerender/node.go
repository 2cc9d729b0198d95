// Package nativerender turns a parsed home document into a tree of view
// nodes with React Native style props, for the iOS and Android clients.
package nativerender

import "github.com/goliatone/go-famhome/internal/linkpolicy"

// Kind names a native component.
type Kind string

const (
	KindView            Kind = "view"
	KindImageBackground Kind = "image_background"
	KindOverlay         Kind = "overlay"
	KindImage           Kind = "image"
	KindHeading         Kind = "heading"
	KindParagraph       Kind = "paragraph"
	KindList            Kind = "list"
	KindListItem        Kind = "list_item"
	KindBlockquote      Kind = "blockquote"
	KindCodeBlock       Kind = "code_block"
	KindRule            Kind = "rule"
	KindText            Kind = "text"
	KindStrong          Kind = "strong"
	KindEmphasis        Kind = "emphasis"
	KindStrikethrough   Kind = "strikethrough"
	KindCode            Kind = "code"
	KindLink            Kind = "link"
	KindBreak           Kind = "break"
)

// Style is a set of React Native style props.
type Style map[string]any

// Node is one element of the native tree. Only the fields relevant to Kind
// are set.
type Node struct {
	Kind     Kind               `json:"kind"`
	Style    Style              `json:"style,omitempty"`
	Text     string             `json:"text,omitempty"`
	Source   string             `json:"source,omitempty"`
	Alt      string             `json:"alt,omitempty"`
	Href     string             `json:"href,omitempty"`
	Action   *linkpolicy.Action `json:"action,omitempty"`
	Level    int                `json:"level,omitempty"`
	Ordered  bool               `json:"ordered,omitempty"`
	Children []*Node            `json:"children,omitempty"`
}

func (n *Node) append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

func (n *Node) setStyle(key string, value any) {
	if n.Style == nil {
		n.Style = Style{}
	}
	n.Style[key] = value
}

func (n *Node) hasStyle(key string) bool {
	_, ok := n.Style[key]
	return ok
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// PlainText concatenates the text of n's subtree.
func (n *Node) PlainText() string {
	var out []byte
	n.Walk(func(node *Node) {
		switch node.Kind {
		case KindText, KindCode:
			out = append(out, node.Text...)
		case KindBreak:
			out = append(out, '\n')
		}
	})
	return string(out)
}

func isTextBlock(kind Kind) bool {
	switch kind {
	case KindHeading, KindParagraph, KindListItem:
		return true
	default:
		return false
	}
}
