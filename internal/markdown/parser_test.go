package markdown

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-famhome/pkg/interfaces"
)

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1>Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	html, err := parser.Parse([]byte("<script>alert(1)</script>\n\ntext"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected raw HTML to be omitted in safe mode, got %q", html)
	}
}

func TestGoldmarkParser_ParseInline(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	cases := map[string]string{
		"Hello **there**":       "Hello <strong>there</strong>",
		"Call [us](app://chat)": `Call <a href="app://chat">us</a>`,
	}
	for input, want := range cases {
		got, err := parser.ParseInline([]byte(input))
		if err != nil {
			t.Fatalf("ParseInline(%q): %v", input, err)
		}
		if string(got) != want {
			t.Fatalf("ParseInline(%q) = %q, want %q", input, got, want)
		}
	}

	multi, err := parser.ParseInline([]byte("one\n\ntwo"))
	if err != nil {
		t.Fatalf("ParseInline: %v", err)
	}
	if strings.Count(string(multi), "<p>") != 2 {
		t.Fatalf("expected multi-paragraph content to keep paragraphs, got %q", multi)
	}
}

func TestGoldmarkParser_AST(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	doc, source := parser.AST([]byte("## Title\n\n- a\n- b"))
	if doc.Kind() != ast.KindDocument {
		t.Fatalf("expected document root, got %v", doc.Kind())
	}

	heading, ok := doc.FirstChild().(*ast.Heading)
	if !ok || heading.Level != 2 {
		t.Fatalf("expected level 2 heading, got %#v", doc.FirstChild())
	}
	if got := string(heading.Lines().Value(source)); got != "Title" {
		t.Fatalf("expected heading text Title, got %q", got)
	}
	if _, ok := heading.NextSibling().(*ast.List); !ok {
		t.Fatalf("expected list after heading, got %T", heading.NextSibling())
	}
}

func TestCollectExtensionsIgnoresUnknownNames(t *testing.T) {
	if got := collectExtensions([]string{"GFM", "gfm", "bogus"}); len(got) != 1 {
		t.Fatalf("expected a single extension, got %d", len(got))
	}
	if got := collectExtensions(nil); len(got) != len(DefaultExtensions) {
		t.Fatalf("expected default extensions, got %d", len(got))
	}
	if KnownExtension("bogus") || !KnownExtension(" Linkify ") {
		t.Fatalf("unexpected KnownExtension results")
	}
}
