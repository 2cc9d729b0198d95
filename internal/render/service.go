// Package render dispatches a home page body to the adapter for the client
// platform. The body is parsed once through the shared homemd parser.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-famhome/internal/homemd"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/markdown"
	"github.com/goliatone/go-famhome/internal/render/htmlrender"
	"github.com/goliatone/go-famhome/internal/render/imagepolicy"
	"github.com/goliatone/go-famhome/internal/render/nativerender"
	"github.com/goliatone/go-famhome/internal/render/style"
	"github.com/goliatone/go-famhome/internal/sanitize"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// Platform identifies a client.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

const platformUnknownCode = "RENDER_PLATFORM_UNKNOWN"

// ErrUnknownPlatform is wrapped by every platform validation failure.
var ErrUnknownPlatform = errors.New("render: unknown platform")

// ParsePlatform normalises value into a Platform.
func ParsePlatform(value string) (Platform, error) {
	switch platform := Platform(strings.ToLower(strings.TrimSpace(value))); platform {
	case PlatformWeb, PlatformIOS, PlatformAndroid:
		return platform, nil
	default:
		return "", goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownPlatform, value), goerrors.CategoryValidation, "unsupported render platform").
			WithTextCode(platformUnknownCode)
	}
}

// Native reports whether the platform uses the native adapter.
func (p Platform) Native() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// Output is the rendered form of one body. Exactly one of HTML or Native is
// set.
type Output struct {
	Platform Platform           `json:"platform"`
	HTML     string             `json:"html,omitempty"`
	Native   *nativerender.Node `json:"native,omitempty"`
}

// Config tunes the service.
type Config struct {
	Markdown             interfaces.ParseOptions
	ParseCacheSize       int
	TrustedImagePrefixes []string
	TrustedImageHosts    []string
	DimmerColor          string
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the module logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarkdownParser replaces the goldmark parser used for markdown runs.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.markdown = parser
		}
	}
}

// Service renders home page bodies for any Platform.
type Service struct {
	parser   *homemd.Parser
	markdown interfaces.MarkdownParser
	html     *htmlrender.Renderer
	native   *nativerender.Renderer
	logger   interfaces.Logger
}

// NewService builds the parser and both adapters from cfg.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	if s.markdown == nil {
		s.markdown = markdown.NewGoldmarkParser(cfg.Markdown)
	}

	parser, err := homemd.NewParser(cfg.ParseCacheSize)
	if err != nil {
		return nil, fmt.Errorf("render: parse cache: %w", err)
	}
	s.parser = parser

	images := imagepolicy.New(cfg.TrustedImagePrefixes, cfg.TrustedImageHosts)
	theme := style.DefaultTheme().WithDimmer(cfg.DimmerColor)
	sanitizer := sanitize.NewDefault()

	s.html, err = htmlrender.New(htmlrender.Options{
		Parser:    s.markdown,
		Sanitizer: sanitizer,
		Images:    &images,
		Theme:     &theme,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}
	s.native, err = nativerender.New(nativerender.Options{
		Parser:    s.markdown,
		URLs:      sanitizer,
		Images:    &images,
		Theme:     &theme,
		HardWraps: cfg.Markdown.HardWraps,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Parse returns the shared document for raw.
func (s *Service) Parse(raw string) homemd.Document {
	return s.parser.Parse(raw)
}

// Render parses raw and renders it for platform.
func (s *Service) Render(ctx context.Context, platform Platform, raw string) (*Output, error) {
	return s.RenderDocument(ctx, platform, s.Parse(raw))
}

// RenderDocument renders an already parsed document for platform.
func (s *Service) RenderDocument(ctx context.Context, platform Platform, doc homemd.Document) (*Output, error) {
	platform, err := ParsePlatform(string(platform))
	if err != nil {
		return nil, err
	}

	logger := logging.WithRenderContext(s.logger, string(platform), "")
	out := &Output{Platform: platform}
	if platform.Native() {
		out.Native, err = s.native.Render(ctx, doc)
	} else {
		out.HTML, err = s.html.Render(ctx, doc)
	}
	if err != nil {
		logger.Error("render.failed", "error", err)
		return nil, err
	}
	return out, nil
}
