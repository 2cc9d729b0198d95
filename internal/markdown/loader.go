package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// LoaderConfig configures home file discovery.
type LoaderConfig struct {
	// Pattern limits discovered files to names matching the glob. Defaults
	// to "*.md".
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader reads home page files from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader returns a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single home file. name is slash separated and
// relative to the loader's filesystem root.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.HomeFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(strings.TrimPrefix(name, "./"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	meta, body, err := ParseHomeFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", name, err)
	}
	sum := sha256.Sum256(data)

	return &interfaces.HomeFile{
		FilePath:    name,
		FrontMatter: meta,
		Body:        body,
		Checksum:    sum[:],
	}, nil
}

// LoadDirectory loads every matching file under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.HomeFile, error) {
	root := path.Clean(strings.TrimPrefix(dir, "./"))
	if root == "" {
		root = "."
	}

	var files []*interfaces.HomeFile
	err := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if match, _ := path.Match(l.pattern, path.Base(current)); !match {
			return nil
		}

		file, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].FilePath < files[j].FilePath
	})
	return files, nil
}
