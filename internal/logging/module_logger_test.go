package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-famhome/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "famhome.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")

	nilProvider := &stubProvider{}
	if _, ok := ModuleLogger(nilProvider, renderModule).(noopLogger); !ok {
		t.Fatalf("expected noopLogger when provider returns nil")
	}
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	RenderLogger(provider).Info("with provider")

	if len(provider.requested) != 1 || provider.requested[0] != renderModule {
		t.Fatalf("expected module %s, got %v", renderModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != renderModule {
		t.Fatalf("expected module field %s, got %v", renderModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestCommandLoggerNamespacesCommands(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}

	_ = CommandLogger(provider, "families.init")
	_ = CommandLogger(provider, " ")

	want := []string{"famhome.commands.families.init", commandsModule}
	if len(provider.requested) != 2 || provider.requested[0] != want[0] || provider.requested[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, provider.requested)
	}
}

func TestWithFamilyContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithFamilyContext(rec, " fam-1 ", "")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldFamilyID] != "fam-1" {
		t.Fatalf("expected trimmed family id, got %v", rec.fields[0])
	}
	if _, ok := rec.fields[0][fieldOwnerUID]; ok {
		t.Fatalf("expected owner uid to be skipped, got %v", rec.fields[0])
	}

	WithRenderContext(rec, "", "")
	if len(rec.fields) != 1 {
		t.Fatalf("expected empty render context to skip WithFields")
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected ContextFields to return a copy")
	}
}
