package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/apigen"
	"github.com/wippyai/apigen/config"
	"github.com/wippyai/apigen/dispatch"
	"github.com/wippyai/apigen/errors"
	"github.com/wippyai/apigen/gltrace"
	"github.com/wippyai/apigen/specs"
	"github.com/wippyai/apigen/trace"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML configuration file")
		apiNames    = flag.String("api", "", "APIs to generate, comma-separated (overrides config)")
		outDir      = flag.String("out", "", "Output directory (overrides config)")
		list        = flag.Bool("list", false, "List functions and interfaces and exit")
		validate    = flag.Bool("validate", false, "Validate the API descriptions and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive browser with TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile, *apiNames, *outDir, *verbose)
	if err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
	if len(cfg.APIs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: apigen -api <name>[,<name>...] [-out dir] [-config file.yaml]")
		fmt.Fprintln(os.Stderr, "       apigen -api <name> -list")
		fmt.Fprintln(os.Stderr, "       apigen -api <name> -validate")
		fmt.Fprintln(os.Stderr, "       apigen -api <name> -i  (interactive mode)")
		fmt.Fprintf(os.Stderr, "Known APIs: %s\n", strings.Join(specs.Names(), ", "))
		os.Exit(1)
	}

	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	apigen.SetLogger(log.Named("apigen"))
	dispatch.SetLogger(log.Named("dispatch"))
	trace.SetLogger(log.Named("trace"))
	gltrace.SetLogger(log.Named("gltrace"))

	switch {
	case *interactive:
		err = runInteractive(cfg.APIs[0], cfg)
	case *list:
		err = runList(os.Stdout, cfg.APIs)
	case *validate:
		err = runValidate(log, cfg.APIs)
	default:
		err = run(log, cfg)
	}
	if err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints each error combined in err on its own line, followed by
// hints for unknown api names and a missing configuration file.
func report(w io.Writer, err error) {
	unknownAPI := false
	for _, part := range errors.Errors(err) {
		fmt.Fprintf(w, "Error: %v\n", part)
		var e *errors.Error
		if errors.As(part, &e) && e.Kind == errors.KindInvalidInput && len(e.Path) > 0 && e.Path[0] == "apis" {
			unknownAPI = true
		}
	}
	if unknownAPI {
		fmt.Fprintf(w, "Known APIs: %s\n", strings.Join(specs.Names(), ", "))
	}
	if errors.Match(err, errors.PhaseConfig, errors.KindIO) && errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, "Configuration file not found; check the -config path.")
	}
}

// loadConfig reads the configuration file, when given, and applies the
// command line overrides on top.
func loadConfig(path, apis, out string, verbose bool) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if apis != "" {
		cfg.APIs = strings.Split(apis, ",")
	}
	if out != "" {
		cfg.OutputDir = out
	}
	if verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runValidate(log *zap.Logger, names []string) error {
	for _, name := range names {
		m, err := specs.Load(name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("validate %s: %w", name, err)
		}
		log.Debug("api valid",
			zap.String("api", name),
			zap.Int("functions", len(m.Functions)),
			zap.Int("interfaces", len(m.AllInterfaces())))
		fmt.Printf("%s: ok\n", name)
	}
	return nil
}

func run(log *zap.Logger, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.New(errors.PhaseEmit, errors.KindIO).
			Path(cfg.OutputDir).Cause(err).Detail("create output directory").Build()
	}
	for _, name := range cfg.APIs {
		files, err := apigen.GenerateAPI(name, cfg)
		if err != nil {
			return fmt.Errorf("generate %s: %w", name, err)
		}
		for _, f := range files {
			path := filepath.Join(cfg.OutputDir, f.Name)
			if err := os.WriteFile(path, []byte(f.Source), 0o644); err != nil {
				return errors.New(errors.PhaseEmit, errors.KindIO).
					Path(path).Cause(err).Detail("write output").Build()
			}
			log.Debug("file written", zap.String("path", path), zap.Int("bytes", len(f.Source)))
			fmt.Println(path)
		}
	}
	return nil
}
