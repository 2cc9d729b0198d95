package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// ParseHomeFrontMatter splits a home page file into its metadata and the raw
// dialect body. Files without a front matter block return an empty
// HomeFrontMatter and the whole source as body.
func ParseHomeFrontMatter(source []byte) (interfaces.HomeFrontMatter, []byte, error) {
	var meta interfaces.HomeFrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.HomeFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
