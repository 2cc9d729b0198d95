package nativerender

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-famhome/internal/linkpolicy"
)

// converter maps a goldmark tree onto native nodes.
type converter struct {
	source    []byte
	hardWraps bool
	image     func(src, alt string) *Node
}

func (c *converter) blocks(parent ast.Node) []*Node {
	var out []*Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.block(child)...)
	}
	return out
}

func (c *converter) block(n ast.Node) []*Node {
	switch node := n.(type) {
	case *ast.Heading:
		return []*Node{{Kind: KindHeading, Level: node.Level, Children: c.inlines(node)}}
	case *ast.Paragraph, *ast.TextBlock:
		return c.paragraph(node)
	case *ast.List:
		list := &Node{Kind: KindList, Ordered: node.IsOrdered()}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			list.append(&Node{Kind: KindListItem, Children: c.blocks(item)})
		}
		return []*Node{list}
	case *ast.Blockquote:
		return []*Node{{Kind: KindBlockquote, Children: c.blocks(node)}}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return []*Node{{Kind: KindCodeBlock, Text: c.lines(node)}}
	case *ast.ThematicBreak:
		return []*Node{{Kind: KindRule}}
	case *ast.HTMLBlock:
		return nil
	default:
		return c.blocks(node)
	}
}

// paragraph splits out images, which are block components natively, and
// wraps the remaining inline runs in paragraphs.
func (c *converter) paragraph(n ast.Node) []*Node {
	var out []*Node
	current := &Node{Kind: KindParagraph}
	flush := func() {
		if len(current.Children) > 0 {
			trimBreaks(current)
			if len(current.Children) > 0 {
				out = append(out, current)
			}
		}
		current = &Node{Kind: KindParagraph}
	}
	for _, inline := range c.inlines(n) {
		if inline.Kind == KindImage {
			flush()
			out = append(out, inline)
			continue
		}
		current.append(inline)
	}
	flush()
	return out
}

func trimBreaks(n *Node) {
	for len(n.Children) > 0 && isBlank(n.Children[0]) {
		n.Children = n.Children[1:]
	}
	for len(n.Children) > 0 && isBlank(n.Children[len(n.Children)-1]) {
		n.Children = n.Children[:len(n.Children)-1]
	}
}

func isBlank(n *Node) bool {
	return n.Kind == KindBreak || (n.Kind == KindText && strings.TrimSpace(n.Text) == "")
}

func (c *converter) inlines(parent ast.Node) []*Node {
	var out []*Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.inline(child)...)
	}
	return out
}

func (c *converter) inline(n ast.Node) []*Node {
	switch node := n.(type) {
	case *ast.Text:
		out := []*Node{{Kind: KindText, Text: string(node.Segment.Value(c.source))}}
		if node.HardLineBreak() || (node.SoftLineBreak() && c.hardWraps) {
			out = append(out, &Node{Kind: KindBreak})
		} else if node.SoftLineBreak() {
			out = append(out, &Node{Kind: KindText, Text: " "})
		}
		return out
	case *ast.String:
		return []*Node{{Kind: KindText, Text: string(node.Value)}}
	case *ast.Emphasis:
		kind := KindEmphasis
		if node.Level >= 2 {
			kind = KindStrong
		}
		return []*Node{{Kind: kind, Children: c.inlines(node)}}
	case *extast.Strikethrough:
		return []*Node{{Kind: KindStrikethrough, Children: c.inlines(node)}}
	case *ast.CodeSpan:
		return []*Node{{Kind: KindCode, Text: string(node.Text(c.source))}}
	case *ast.Link:
		return []*Node{link(string(node.Destination), c.inlines(node))}
	case *ast.AutoLink:
		label := &Node{Kind: KindText, Text: string(node.Label(c.source))}
		return []*Node{link(string(node.URL(c.source)), []*Node{label})}
	case *ast.Image:
		image := c.image(string(node.Destination), string(node.Text(c.source)))
		if image == nil {
			return nil
		}
		return []*Node{image}
	case *ast.RawHTML:
		return nil
	default:
		return c.inlines(node)
	}
}

func link(href string, children []*Node) *Node {
	action := linkpolicy.Classify(href)
	return &Node{Kind: KindLink, Href: href, Action: &action, Children: children}
}

func (c *converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(c.source))
	}
	return strings.TrimRight(b.String(), "\n")
}
