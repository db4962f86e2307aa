// Package config loads the generator configuration.
//
// A configuration file selects the APIs to generate and tunes the
// dispatcher, the tracer and logging:
//
//	apis: [glx]
//	output_dir: gen
//	dispatch:
//	  guard: RETRACE
//	  fail_policy: ignore_void
//	trace:
//	  dummy_methods: 64
//	log:
//	  level: debug
//
// Unknown keys are rejected. Missing keys keep their Default value.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	yaml "gopkg.in/yaml.v2"

	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/specs"
	"github.com/wippyai/apigen/trace"
)

// Config is the complete generator configuration.
type Config struct {
	APIs      []string `yaml:"apis"`
	OutputDir string   `yaml:"output_dir"`
	Dispatch  Dispatch `yaml:"dispatch"`
	Trace     Trace    `yaml:"trace"`
	Log       Log      `yaml:"log"`
}

// Dispatch configures the dispatcher generator.
type Dispatch struct {
	Guard           string `yaml:"guard"`
	FailPolicy      string `yaml:"fail_policy"`
	SuppressAliases bool   `yaml:"suppress_aliases"`
	// Inline emits the dispatch layer as a single static header instead
	// of a declaration header and an implementation file.
	Inline bool `yaml:"inline"`
}

// Trace configures the tracer generator.
type Trace struct {
	Writer       string `yaml:"writer"`
	DummyMethods int    `yaml:"dummy_methods"`
}

// Log configures the logger of the command line driver.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Dispatch: Dispatch{
			Guard:      dispatch.DefaultGuard,
			FailPolicy: dispatch.FailAbort.String(),
		},
		Trace: Trace{
			Writer:       trace.DefaultWriter,
			DummyMethods: trace.DefaultDummyMethods,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read "+path)
	}
	return Parse(bs)
}

// Parse decodes bs over the defaults and validates the result.
func Parse(bs []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(bs, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.APIs))
	for i, name := range c.APIs {
		path := []string{"apis", fmt.Sprint(i)}
		if _, err := specs.Lookup(name); err != nil {
			errs = append(errs, errors.InvalidInput(errors.PhaseConfig, path, fmt.Sprintf("unknown api %q", name)))
			continue
		}
		if seen[name] {
			errs = append(errs, errors.Duplicate(errors.PhaseConfig, path, name))
		}
		seen[name] = true
	}
	if c.Dispatch.Guard == "" {
		errs = append(errs, errors.InvalidInput(errors.PhaseConfig, []string{"dispatch", "guard"}, "must not be empty"))
	}
	if _, err := dispatch.ParseFailPolicy(c.Dispatch.FailPolicy); err != nil {
		errs = append(errs, errors.InvalidInput(errors.PhaseConfig, []string{"dispatch", "fail_policy"}, err.Error()))
	}
	if c.Trace.Writer == "" {
		errs = append(errs, errors.InvalidInput(errors.PhaseConfig, []string{"trace", "writer"}, "must not be empty"))
	}
	if c.Trace.DummyMethods < 0 {
		errs = append(errs, errors.InvalidInput(errors.PhaseConfig, []string{"trace", "dummy_methods"}, "must not be negative"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, errors.InvalidInput(errors.PhaseConfig, []string{"log", "level"}, err.Error()))
	}
	return errors.Combine(errs...)
}

// DispatchOptions translates the dispatch section into generator options.
func (c *Config) DispatchOptions() []dispatch.Option {
	policy, _ := dispatch.ParseFailPolicy(c.Dispatch.FailPolicy)
	return []dispatch.Option{
		dispatch.WithGuard(c.Dispatch.Guard),
		dispatch.WithSuppressAliases(c.Dispatch.SuppressAliases),
		dispatch.WithFailPolicy(policy),
	}
}

// TraceOptions translates the trace section into generator options.
func (c *Config) TraceOptions() []trace.Option {
	return []trace.Option{
		trace.WithWriter(c.Trace.Writer),
		trace.WithDummyMethods(c.Trace.DummyMethods),
	}
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.InvalidInput(errors.PhaseConfig, []string{"log", "level"}, err.Error())
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
