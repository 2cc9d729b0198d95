package markdown

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestParseHomeFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/homes/parkers.md")

	fm, body, err := ParseHomeFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseHomeFrontMatter: %v", err)
	}

	if fm.Owner != "uid-parker" || fm.Name != "The Parkers" {
		t.Fatalf("unexpected front matter %#v", fm)
	}
	if fm.HeaderTitle != "Welcome to the Parker house" || fm.BodyTitle != "Our corner of the internet" {
		t.Fatalf("unexpected titles %#v", fm)
	}
	if fm.Footer != "Made with love in Ohio" {
		t.Fatalf("unexpected footer %q", fm.Footer)
	}
	if fm.Custom["pets"] != 2 {
		t.Fatalf("expected custom key pets, got %#v", fm.Custom)
	}
	if !strings.HasPrefix(string(body), "![background](") {
		t.Fatalf("expected body to start with the background directive, got %q", body)
	}
}

func TestParseHomeFrontMatterWithoutBlock(t *testing.T) {
	data := readFixture(t, "testdata/plain.md")

	fm, body, err := ParseHomeFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseHomeFrontMatter: %v", err)
	}
	if fm.Owner != "" {
		t.Fatalf("expected empty owner, got %q", fm.Owner)
	}
	if !strings.Contains(string(body), "![center](hello)") {
		t.Fatalf("expected body to be returned unchanged, got %q", body)
	}
}

func TestLoaderLoadDirectory(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{})

	files, err := loader.LoadDirectory(context.Background(), "homes")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 top-level home files, got %d", len(files))
	}
	if files[0].FilePath != "homes/nguyen.md" || files[1].FilePath != "homes/parkers.md" {
		t.Fatalf("unexpected ordering %q, %q", files[0].FilePath, files[1].FilePath)
	}
	if len(files[0].Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(files[0].Checksum))
	}
}

func TestLoaderLoadDirectoryRecursive(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{Recursive: true})

	files, err := loader.LoadDirectory(context.Background(), "./homes")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 home files, got %d", len(files))
	}
	if files[0].FilePath != "homes/nested/lee.md" {
		t.Fatalf("expected nested file first, got %q", files[0].FilePath)
	}
}

func TestLoaderHonoursCancelledContext(t *testing.T) {
	loader := NewLoader(os.DirFS("testdata"), LoaderConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadFile(ctx, "homes/parkers.md"); err == nil {
		t.Fatal("expected cancelled context error")
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
