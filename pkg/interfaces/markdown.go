package interfaces

import "github.com/yuin/goldmark/ast"

// MarkdownParser converts markdown runs into HTML or into a goldmark AST.
// Render adapters depend on this contract rather than on goldmark directly.
type MarkdownParser interface {
	// Parse renders markdown into an HTML fragment using the default options.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
	// ParseInline renders markdown without the wrapping block element, for
	// text that is placed inside an adapter-owned heading or paragraph.
	ParseInline(markdown []byte) ([]byte, error)
	// AST parses markdown into a goldmark node tree for non-HTML adapters.
	AST(markdown []byte) (ast.Node, []byte)
}

// ParseOptions customises markdown rendering. Field names stay readable for
// YAML configuration and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode suppresses raw HTML in the output. When false raw HTML is
	// emitted and callers are expected to sanitize the result.
	SafeMode bool
}

// HomeFrontMatter is the metadata block accepted at the top of a home page
// file imported from disk.
type HomeFrontMatter struct {
	Owner       string         `yaml:"owner" json:"owner"`
	Name        string         `yaml:"name" json:"name"`
	HeaderTitle string         `yaml:"header_title" json:"header_title"`
	BodyTitle   string         `yaml:"body_title" json:"body_title"`
	Footer      string         `yaml:"footer" json:"footer"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
}

// HomeFile is one home page loaded from disk: front matter plus the raw
// dialect body.
type HomeFile struct {
	FilePath    string
	FrontMatter HomeFrontMatter
	Body        []byte
	Checksum    []byte
}
