package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("famhome %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestParsePrintsDocument(t *testing.T) {
	out := mustRun(t, "parse", "testdata/home.md")

	var doc struct {
		BackgroundURL string           `json:"background_url"`
		Segments      []map[string]any `json:"segments"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !strings.HasSuffix(doc.BackgroundURL, "/bg.png") {
		t.Fatalf("unexpected background %q", doc.BackgroundURL)
	}
	if len(doc.Segments) != 3 {
		t.Fatalf("expected run, block, run; got %d segments", len(doc.Segments))
	}
}

func TestRenderPlatforms(t *testing.T) {
	web := mustRun(t, "render", "testdata/home.md")
	if !strings.Contains(web, "background-image") || !strings.Contains(web, "Weekend plans") {
		t.Fatalf("unexpected web output %s", web)
	}

	native := mustRun(t, "render", "testdata/home.md", "--platform", "android")
	if !strings.Contains(native, `"image_background"`) {
		t.Fatalf("unexpected native output %s", native)
	}

	if _, err := run(t, "render", "testdata/home.md", "--platform", "desktop"); err == nil {
		t.Fatal("expected unknown platform to fail")
	}
}

func TestFamilyLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "famhome.db")

	created := mustRun(t, "--db", db, "family", "init", "uid-lee", "--name", "The Lees")
	if !strings.Contains(created, `"slug": "the-lees"`) {
		t.Fatalf("unexpected init output %s", created)
	}

	mustRun(t, "--db", db, "family", "set-body", "uid-lee", "testdata/home.md")
	rendered := mustRun(t, "--db", db, "family", "show", "uid-lee", "--render", "web")
	if !strings.Contains(rendered, "Welcome home") {
		t.Fatalf("expected stored body to render, got %s", rendered)
	}

	mustRun(t, "--db", db, "family", "add-image", "uid-lee", "https://firebasestorage.googleapis.com/pic.png", "--cursor", "0")
	shown := mustRun(t, "--db", db, "family", "show", "uid-lee")
	if !strings.Contains(shown, "![image](https://firebasestorage.googleapis.com/pic.png)") {
		t.Fatalf("expected inserted image, got %s", shown)
	}

	path := mustRun(t, "--db", db, "family", "add-image", "uid-lee", "--mime", "image/png")
	if !strings.HasPrefix(path, "families/") || !strings.HasSuffix(strings.TrimSpace(path), ".png") {
		t.Fatalf("unexpected upload path %q", path)
	}

	mustRun(t, "--db", db, "family", "import-html", "uid-lee", "testdata/legacy.html")
	shown = mustRun(t, "--db", db, "family", "show", "uid-lee")
	if !strings.Contains(shown, "## Old page") {
		t.Fatalf("expected imported markdown, got %s", shown)
	}

	if _, err := run(t, "--db", db, "family", "show", "uid-missing"); err == nil {
		t.Fatal("expected missing family to fail")
	}
}

func TestFamilyImportDirectory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "famhome.db")

	dry := mustRun(t, "--db", db, "family", "import", "testdata/homes", "--dry-run")
	if !strings.HasPrefix(dry, "would import 1, skipped 1, failed 0") {
		t.Fatalf("unexpected dry run summary %q", dry)
	}
	if list := mustRun(t, "--db", db, "family", "list"); strings.TrimSpace(list) != "" {
		t.Fatalf("expected dry run to write nothing, got %q", list)
	}

	summary := mustRun(t, "--db", db, "family", "import", "testdata/homes")
	if !strings.HasPrefix(summary, "imported 1, skipped 1, failed 0") {
		t.Fatalf("unexpected summary %q", summary)
	}
	list := mustRun(t, "--db", db, "family", "list")
	if !strings.Contains(list, "uid-parker\tthe-parkers\tThe Parkers") {
		t.Fatalf("unexpected list %q", list)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "famhome.yaml")
	if err := os.WriteFile(cfgPath, []byte("storage:\n  driver: mongodb\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, "--config", cfgPath, "family", "list"); err == nil {
		t.Fatal("expected invalid storage driver to fail")
	}
	if _, err := run(t, "parse"); err == nil {
		t.Fatal("expected missing FILE argument to fail")
	}
}
