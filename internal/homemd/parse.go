package homemd

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Parse converts a raw home-page body into a Document. Editor comments are
// removed first, then the background directive, then the remaining body is
// segmented. Parse is deterministic and safe to call on every keystroke.
func Parse(raw string) Document {
	body := StripComments(raw)
	backgroundURL, cleaned := ExtractBackground(body)
	return Document{
		BackgroundURL: backgroundURL,
		Segments:      Segments(cleaned),
	}
}

// Parser memoizes Parse results keyed by the raw input. A Parser with no
// cache simply delegates to Parse. It is safe for concurrent use.
type Parser struct {
	cache *lru.Cache[string, Document]
}

// NewParser returns a Parser remembering up to size documents. A size of
// zero or less disables memoization.
func NewParser(size int) (*Parser, error) {
	if size <= 0 {
		return &Parser{}, nil
	}
	cache, err := lru.New[string, Document](size)
	if err != nil {
		return nil, err
	}
	return &Parser{cache: cache}, nil
}

// Parse returns the Document for raw, served from the cache when possible.
// The returned value never aliases cached state.
func (p *Parser) Parse(raw string) Document {
	if p == nil || p.cache == nil {
		return Parse(raw)
	}
	if doc, ok := p.cache.Get(raw); ok {
		return doc.Clone()
	}
	doc := Parse(raw)
	p.cache.Add(raw, doc)
	return doc.Clone()
}

// Cached reports how many documents are currently memoized.
func (p *Parser) Cached() int {
	if p == nil || p.cache == nil {
		return 0
	}
	return p.cache.Len()
}
