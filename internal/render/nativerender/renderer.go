package nativerender

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-famhome/internal/homemd"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/render/imagepolicy"
	"github.com/goliatone/go-famhome/internal/render/style"
	"github.com/goliatone/go-famhome/internal/sanitize"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// Options wires the renderer's collaborators. Parser is required. URLs
// gates image sources with the same scheme policy the web adapter uses.
type Options struct {
	Parser    interfaces.MarkdownParser
	URLs      *sanitize.Sanitizer
	Images    *imagepolicy.Policy
	Theme     *style.Theme
	HardWraps bool
	Logger    interfaces.Logger
}

// Renderer builds native view trees. It is safe for concurrent use.
type Renderer struct {
	parser    interfaces.MarkdownParser
	urls      *sanitize.Sanitizer
	images    imagepolicy.Policy
	theme     style.Theme
	hardWraps bool
	logger    interfaces.Logger
}

// New returns a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Parser == nil {
		return nil, fmt.Errorf("nativerender: markdown parser is required")
	}
	r := &Renderer{
		parser:    opts.Parser,
		urls:      opts.URLs,
		images:    imagepolicy.Default(),
		theme:     style.DefaultTheme(),
		hardWraps: opts.HardWraps,
		logger:    opts.Logger,
	}
	if opts.Images != nil {
		r.images = *opts.Images
	}
	if opts.Theme != nil {
		r.theme = *opts.Theme
	}
	if r.urls == nil {
		r.urls = sanitize.NewDefault()
	}
	if r.logger == nil {
		r.logger = logging.NoOp()
	}
	return r, nil
}

// Render converts doc into a root node. With a trusted background the root
// is an image_background holding a dimmer overlay; otherwise it is a padded
// view.
func (r *Renderer) Render(ctx context.Context, doc homemd.Document) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var content []*Node
	for _, segment := range doc.Segments {
		switch s := segment.(type) {
		case homemd.MarkdownRun:
			content = append(content, r.markdown(s.Text)...)
		case homemd.AlignedBlock:
			content = append(content, r.aligned(s))
		}
	}

	background := doc.HasBackground() && r.images.Allowed(doc.BackgroundURL)
	if doc.HasBackground() && !background {
		r.logger.Warn("render.native.background_rejected", "url", doc.BackgroundURL)
	}

	var root *Node
	if background {
		root = r.backgroundRoot(doc.BackgroundURL)
		root.append(content...)
		r.applyContrast(root, false)
	} else {
		root = &Node{Kind: KindView, Style: Style{"padding": r.theme.PlainPadding}}
		root.append(content...)
	}

	r.logger.Debug("render.native.rendered", "segments", len(doc.Segments), "background", background)
	return root, nil
}

func (r *Renderer) markdown(text string) []*Node {
	tree, source := r.parser.AST([]byte(text))
	conv := &converter{source: source, hardWraps: r.hardWraps, image: r.inlineImage}
	return conv.blocks(tree)
}

// inlineImage returns nil when src fails the URL scheme policy.
func (r *Renderer) inlineImage(src, alt string) *Node {
	src = strings.TrimSpace(src)
	if err := r.urls.ValidateURL(src); err != nil {
		r.logger.Warn("render.native.image_rejected", "url", src, "error", err)
		return nil
	}
	return &Node{
		Kind:   KindImage,
		Source: src,
		Alt:    alt,
		Style: Style{
			"width":      "100%",
			"height":     r.theme.ImageHeight,
			"resizeMode": "contain",
		},
	}
}

func (r *Renderer) aligned(block homemd.AlignedBlock) *Node {
	container := &Node{
		Kind: KindView,
		Style: Style{
			"alignItems": style.FlexAlign(block.Align),
			"width":      "100%",
		},
	}

	switch content := block.Content.(type) {
	case homemd.ImageContent:
		container.setStyle("marginVertical", r.theme.ImageMargin)
		if image := r.inlineImage(content.URL, content.Alt); image != nil {
			image.setStyle("borderRadius", r.theme.ImageRadius)
			container.append(image)
		}
	case homemd.TextContent:
		container.setStyle("marginVertical", r.theme.TextMargin)
		level, text := homemd.SplitHeading(content.Markdown)
		nodes := r.markdown(text)
		if level > 0 && len(nodes) > 0 && nodes[0].Kind == KindParagraph {
			nodes[0].Kind = KindHeading
			nodes[0].Level = level
		}
		textAlign := style.TextAlign(block.Align)
		for _, node := range nodes {
			node.Walk(func(n *Node) {
				if isTextBlock(n.Kind) {
					n.setStyle("textAlign", textAlign)
				}
			})
		}
		container.append(nodes...)
	}
	return container
}

func (r *Renderer) backgroundRoot(url string) *Node {
	return &Node{
		Kind:   KindImageBackground,
		Source: url,
		Style: Style{
			"minHeight":    r.theme.BackgroundMinHeight,
			"padding":      r.theme.NativePadding,
			"borderRadius": r.theme.NativeRadius,
			"overflow":     "hidden",
		},
		Children: []*Node{{
			Kind: KindOverlay,
			Style: Style{
				"position":        "absolute",
				"top":             0,
				"left":            0,
				"right":           0,
				"bottom":          0,
				"backgroundColor": r.theme.DimmerColor,
				"borderRadius":    r.theme.NativeRadius,
			},
		}},
	}
}

// applyContrast gives text blocks the light color and shadow used over a
// background. Blocks outside aligned containers are centered.
func (r *Renderer) applyContrast(n *Node, insideAligned bool) {
	if n.Kind == KindView && n.hasStyle("alignItems") {
		insideAligned = true
	}
	if isTextBlock(n.Kind) {
		n.setStyle("color", r.theme.TextColor)
		n.setStyle("textShadowColor", r.theme.ShadowColor)
		n.setStyle("textShadowOffset", map[string]int{"width": 0, "height": r.theme.ShadowOffsetY})
		n.setStyle("textShadowRadius", r.theme.ShadowRadius)
		if !insideAligned && !n.hasStyle("textAlign") {
			n.setStyle("textAlign", "center")
		}
	}
	for _, child := range n.Children {
		r.applyContrast(child, insideAligned)
	}
}
