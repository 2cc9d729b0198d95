// Package htmlrender turns a parsed home document into one sanitized HTML
// fragment for the web client.
package htmlrender

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-famhome/internal/homemd"
	"github.com/goliatone/go-famhome/internal/linkpolicy"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/render/imagepolicy"
	"github.com/goliatone/go-famhome/internal/render/style"
	"github.com/goliatone/go-famhome/internal/sanitize"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

const contrastTargets = "h1, h2, h3, h4, h5, p, li"

// Options wires the renderer's collaborators. Nil fields get defaults
// except Parser, which is required.
type Options struct {
	Parser    interfaces.MarkdownParser
	Sanitizer *sanitize.Sanitizer
	Images    *imagepolicy.Policy
	Theme     *style.Theme
	Logger    interfaces.Logger
}

// Renderer produces web HTML. It is safe for concurrent use.
type Renderer struct {
	parser    interfaces.MarkdownParser
	sanitizer *sanitize.Sanitizer
	images    imagepolicy.Policy
	theme     style.Theme
	logger    interfaces.Logger
}

// New returns a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Parser == nil {
		return nil, fmt.Errorf("htmlrender: markdown parser is required")
	}
	r := &Renderer{
		parser:    opts.Parser,
		sanitizer: opts.Sanitizer,
		images:    imagepolicy.Default(),
		theme:     style.DefaultTheme(),
		logger:    opts.Logger,
	}
	if r.sanitizer == nil {
		r.sanitizer = sanitize.NewDefault()
	}
	if opts.Images != nil {
		r.images = *opts.Images
	}
	if opts.Theme != nil {
		r.theme = *opts.Theme
	}
	if r.logger == nil {
		r.logger = logging.NoOp()
	}
	return r, nil
}

// Render converts doc into a single wrapper <div>. Markdown runs go through
// goldmark, aligned blocks get their container styles, and the result is
// sanitized before links are classified and the background applied.
func (r *Renderer) Render(ctx context.Context, doc homemd.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var body strings.Builder
	for _, segment := range doc.Segments {
		fragment, err := r.renderSegment(segment)
		if err != nil {
			return "", err
		}
		body.WriteString(fragment)
		body.WriteByte('\n')
	}

	nodes, err := r.sanitizer.Fragment(body.String())
	if err != nil {
		return "", err
	}
	wrapper := &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, node := range nodes {
		wrapper.AppendChild(node)
	}

	dom := goquery.NewDocumentFromNode(wrapper)
	applyLinkPolicy(dom.Selection)

	if doc.HasBackground() {
		if r.images.Allowed(doc.BackgroundURL) {
			applyContrast(dom.Selection, r.theme)
			r.applyBackground(wrapper, doc.BackgroundURL)
		} else {
			r.logger.Warn("render.html.background_rejected", "url", doc.BackgroundURL)
		}
	}

	out, err := goquery.OuterHtml(dom.Selection)
	if err != nil {
		return "", fmt.Errorf("htmlrender: serialize: %w", err)
	}
	r.logger.Debug("render.html.rendered", "segments", len(doc.Segments), "bytes", len(out))
	return out, nil
}

func (r *Renderer) renderSegment(segment homemd.Segment) (string, error) {
	switch s := segment.(type) {
	case homemd.MarkdownRun:
		out, err := r.parser.Parse([]byte(s.Text))
		if err != nil {
			return "", err
		}
		return string(out), nil
	case homemd.AlignedBlock:
		return r.renderAligned(s)
	default:
		return "", nil
	}
}

func (r *Renderer) renderAligned(block homemd.AlignedBlock) (string, error) {
	container := style.Declare(
		"display", "flex",
		"flex-direction", "column",
		"width", "100%",
		"align-items", style.FlexAlign(block.Align),
		"text-align", style.TextAlign(block.Align),
	)

	switch content := block.Content.(type) {
	case homemd.ImageContent:
		container.Set("margin", style.Px(r.theme.ImageMargin)+" 0")
		img := style.Declare(
			"max-width", "100%",
			"height", "auto",
			"border-radius", style.Px(r.theme.ImageRadius),
			"display", "block",
		)
		return fmt.Sprintf(`<div style="%s"><img src="%s" alt="%s" style="%s"></div>`,
			html.EscapeString(container.String()),
			html.EscapeString(content.URL),
			html.EscapeString(content.Alt),
			html.EscapeString(img.String()),
		), nil
	case homemd.TextContent:
		level, text := homemd.SplitHeading(content.Markdown)
		inner, err := r.parser.ParseInline([]byte(text))
		if err != nil {
			return "", err
		}
		tag := "p"
		if level > 0 {
			tag = fmt.Sprintf("h%d", level)
		}
		if containsBlock(string(inner)) {
			tag = "div"
		}
		container.Set("position", "relative")
		container.Set("z-index", fmt.Sprint(r.theme.TextLayerZIndex))
		container.Set("text-shadow", r.theme.TextShadowCSS())
		container.Set("margin", style.Px(r.theme.TextMargin)+" 0")
		return fmt.Sprintf(`<%s style="%s">%s</%s>`, tag, html.EscapeString(container.String()), inner, tag), nil
	default:
		return "", nil
	}
}

var blockClosers = []string{"</p>", "</li>", "</h1>", "</h2>", "</h3>", "</h4>", "</h5>", "</h6>", "</blockquote>", "</pre>", "<hr", "</table>"}

// containsBlock reports whether rendered inline content still holds block
// elements, which cannot live inside a heading or paragraph.
func containsBlock(fragment string) bool {
	for _, closer := range blockClosers {
		if strings.Contains(fragment, closer) {
			return true
		}
	}
	return false
}

// applyLinkPolicy rewrites anchors: external links open in a new tab, app
// links point at their in-app route and blocked links lose their href.
func applyLinkPolicy(root *goquery.Selection) {
	root.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		action := linkpolicy.Classify(href)
		switch action.Kind {
		case linkpolicy.KindExternal:
			link.SetAttr("target", "_blank")
			link.SetAttr("rel", "noopener noreferrer")
		case linkpolicy.KindApp:
			link.SetAttr("href", action.Path)
		default:
			link.RemoveAttr("href")
		}
	})
}

// applyContrast keeps text readable over a background image. Elements with
// their own position keep it; elements with no alignment of their own, and
// not inside an aligned container, are centered. It must run before the
// wrapper itself becomes a flex container.
func applyContrast(root *goquery.Selection, theme style.Theme) {
	root.Find(contrastTargets).Each(func(_ int, el *goquery.Selection) {
		raw, _ := el.Attr("style")
		decls := style.ParseDeclarations(raw)
		if !decls.Has("position") {
			decls.Set("position", "relative")
			decls.Set("z-index", fmt.Sprint(theme.TextLayerZIndex))
			decls.Set("text-shadow", theme.TextShadowCSS())
		}
		if !decls.Has("text-align") && el.Closest(`div[style*="display: flex"]`).Length() == 0 {
			decls.Set("text-align", "center")
		}
		el.SetAttr("style", decls.String())
	})
}

func (r *Renderer) applyBackground(wrapper *xhtml.Node, url string) {
	decls := style.Declare(
		"position", "relative",
		"isolation", "isolate",
		"min-height", style.Px(r.theme.BackgroundMinHeight),
		"padding", r.theme.WebPadding,
		"display", "flex",
		"flex-direction", "column",
		"border-radius", style.Px(r.theme.WebRadius),
		"overflow", "hidden",
		"color", r.theme.TextColor,
	)
	wrapper.Attr = append(wrapper.Attr, xhtml.Attribute{Key: "style", Val: decls.String()})

	layer := layerDeclarations()
	layer.Set("background-image", "url('"+cssURLEscaper.Replace(url)+"')")
	layer.Set("background-size", "cover")
	layer.Set("background-position", "center")
	layer.Set("z-index", "-1")

	dimmer := layerDeclarations()
	dimmer.Set("background-color", r.theme.DimmerColor)
	dimmer.Set("z-index", "0")

	wrapper.InsertBefore(styledDiv(dimmer), wrapper.FirstChild)
	wrapper.InsertBefore(styledDiv(layer), wrapper.FirstChild)
}

var cssURLEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", "", "\r", "")

func layerDeclarations() style.Declarations {
	return style.Declare(
		"position", "absolute",
		"top", "0",
		"left", "0",
		"width", "100%",
		"height", "100%",
	)
}

func styledDiv(decls style.Declarations) *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []xhtml.Attribute{{Key: "style", Val: decls.String()}},
	}
}
