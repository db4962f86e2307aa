package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/trace"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration is invalid: %v", err)
	}
	want := &Config{
		OutputDir: ".",
		Dispatch:  Dispatch{Guard: dispatch.DefaultGuard, FailPolicy: "abort"},
		Trace:     Trace{Writer: trace.DefaultWriter, DummyMethods: trace.DefaultDummyMethods},
		Log:       Log{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
apis: [glx, com]
output_dir: gen
dispatch:
  fail_policy: ignore_void
  suppress_aliases: true
  inline: true
trace:
  dummy_methods: 8
log:
  level: debug
  development: true
`))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		APIs:      []string{"glx", "com"},
		OutputDir: "gen",
		Dispatch: Dispatch{
			Guard:           dispatch.DefaultGuard,
			FailPolicy:      "ignore_void",
			SuppressAliases: true,
			Inline:          true,
		},
		Trace: Trace{Writer: trace.DefaultWriter, DummyMethods: 8},
		Log:   Log{Level: "debug", Development: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		kind errors.Kind
		n    int
	}{
		{"unknown key", "dispatch:\n  guards: X\n", errors.KindInvalidInput, 1},
		{"bad type", "trace:\n  dummy_methods: many\n", errors.KindInvalidInput, 1},
		{"unknown api", "apis: [vulkan]\n", errors.KindInvalidInput, 1},
		{"duplicate api", "apis: [gl, gl]\n", errors.KindDuplicate, 1},
		{"fail policy", "dispatch:\n  fail_policy: retry\n", errors.KindInvalidInput, 1},
		{"empty guard", "dispatch:\n  guard: \"\"\n", errors.KindInvalidInput, 1},
		{"negative dummies", "trace:\n  dummy_methods: -1\n", errors.KindInvalidInput, 1},
		{"log level", "log:\n  level: loud\n", errors.KindInvalidInput, 1},
		{"several", "apis: [x]\nlog:\n  level: loud\n", errors.KindInvalidInput, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Match(err, errors.PhaseConfig, tt.kind) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
			if got := len(errors.Errors(err)); got != tt.n {
				t.Errorf("got %d errors, want %d: %v", got, tt.n, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apigen.yaml")
	if err := os.WriteFile(path, []byte("apis: [wgl]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"wgl"}, cfg.APIs); diff != "" {
		t.Errorf("APIs mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Match(err, errors.PhaseConfig, errors.KindIO) {
		t.Errorf("missing file err = %v, want io", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	if got := len(cfg.DispatchOptions()); got != 3 {
		t.Errorf("DispatchOptions returned %d options, want 3", got)
	}
	if got := len(cfg.TraceOptions()); got != 2 {
		t.Errorf("TraceOptions returned %d options, want 2", got)
	}
}

func TestLogger(t *testing.T) {
	for _, dev := range []bool{false, true} {
		cfg := Default()
		cfg.Log.Level = "warn"
		cfg.Log.Development = dev
		l, err := cfg.Logger()
		if err != nil {
			t.Fatal(err)
		}
		if l.Core().Enabled(zapcore.InfoLevel) {
			t.Error("info should be disabled at warn level")
		}
	}

	cfg := Default()
	cfg.Log.Level = "loud"
	if _, err := cfg.Logger(); err == nil {
		t.Error("expected error for unknown level")
	}
}
