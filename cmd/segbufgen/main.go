// Command segbufgen generates typed segmented buffers from structs
// annotated with @segments.
package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexhholmes/segbuf/internal/analyzer"
	"github.com/alexhholmes/segbuf/internal/codegen"
	"github.com/alexhholmes/segbuf/internal/config"
	"github.com/alexhholmes/segbuf/internal/parser"
)

// version is overridden with -ldflags "-X main.version=..."
var version = ""

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath  string
		output      string
		dryRun      bool
		verbose     bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("segbufgen", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to segbufgen.yaml (default: $"+config.EnvVar+")")
	flagSet.StringVarP(&output, "output", "o", "", "output file (single input only)")
	flagSet.BoolVarP(&dryRun, "dry-run", "n", false, "print the analyzed layouts instead of writing files")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log each step")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Fprintf(stdout, "segbufgen %s\n", buildVersion())
		return nil
	}

	logger := newLogger(verbose, stderr)
	defer logger.Sync()
	codegen.SetLogger(logger)

	files := flagSet.Args()
	if len(files) == 0 {
		printHelp(stderr, flagSet)
		return errors.New("no input files")
	}
	if output != "" && len(files) > 1 {
		return fmt.Errorf("--output needs exactly one input file, got %d", len(files))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range files {
		g := &generation{
			cfg:    cfg,
			logger: logger.With(zap.String("file", path)),
			stdout: stdout,
			dryRun: dryRun,
		}
		if err := g.run(path, output); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type generation struct {
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	dryRun bool
}

func (g *generation) run(path, output string) error {
	file, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(file.Types) == 0 {
		g.logger.Warn("no @segments types found")
		return nil
	}

	registry := analyzer.NewTypeRegistry()
	declared := make(map[string]bool)
	g.registerSiblings(path, file.Package, registry, declared)
	registry.RegisterFile(file)
	maps.Copy(declared, file.Names)

	var layouts []*analyzer.AnalyzedLayout
	var errs []error
	for _, layout := range file.Types {
		analyzed, err := analyzer.Analyze(layout, registry, analyzer.Options{
			DefaultElem: g.cfg.DefaultElem,
			Declared:    declared,
		})
		if err != nil {
			if analyzed == nil {
				errs = append(errs, fmt.Errorf("%s: %w", layout.Pos, err))
				continue
			}
			for _, msg := range analyzed.Errors {
				errs = append(errs, fmt.Errorf("%s: %s: %s", layout.Pos, layout.Name, msg))
			}
			continue
		}
		g.logger.Debug("analyzed layout",
			zap.String("type", analyzed.TypeName),
			zap.String("elem", analyzed.Elem),
			zap.Int("segments", len(analyzed.Segments)))
		layouts = append(layouts, analyzed)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if g.dryRun {
		printLayouts(g.stdout, path, layouts)
		return nil
	}

	src, err := codegen.GenerateFile(layouts, codegen.FileOptions{
		Package:   file.Package,
		BuildTags: g.cfg.BuildTags,
		Header:    g.cfg.Header,
		Source:    filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if output == "" {
		output = g.cfg.OutputName(path)
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	g.logger.Info("generated", zap.String("output", output), zap.Int("types", len(layouts)))
	return nil
}

// registerSiblings adds the element candidates and type names of the other
// hand-written files in path's package. Generated files are skipped so that
// regenerating does not collide with the previous output.
func (g *generation) registerSiblings(path, pkg string, registry *analyzer.TypeRegistry, declared map[string]bool) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		g.logger.Warn("cannot list package directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") ||
			name == filepath.Base(path) {
			continue
		}

		sibling := filepath.Join(dir, name)
		file, err := parser.ParseFile(sibling)
		if file == nil {
			g.logger.Warn("skipping unparsable file", zap.String("sibling", sibling), zap.Error(err))
			continue
		}
		if file.Generated || file.Package != pkg {
			continue
		}
		if err != nil {
			// Its own layouts are reported when it is generated
			g.logger.Debug("sibling has annotation errors", zap.String("sibling", sibling), zap.Error(err))
		}

		registry.RegisterFile(file)
		maps.Copy(declared, file.Names)
		g.logger.Debug("registered sibling", zap.String("sibling", sibling))
	}
}

func printLayouts(w io.Writer, path string, layouts []*analyzer.AnalyzedLayout) {
	fmt.Fprintf(w, "%s\n", path)
	for _, a := range layouts {
		fmt.Fprintf(w, "\n%s -> %s (elem=%s, %d bytes", a.TypeName, a.BufferName, a.Elem, a.ElemSize)
		switch {
		case a.Align > 0:
			fmt.Fprintf(w, ", align=%d", a.Align)
		case a.Allocator != "":
			fmt.Fprintf(w, ", allocator=%s", a.Allocator)
		}
		if !a.Exported() {
			fmt.Fprint(w, ", unexported")
		}
		fmt.Fprintln(w, ")")

		if len(a.Segments) == 0 {
			fmt.Fprintln(w, "  (no segments)")
			continue
		}
		for _, seg := range a.Segments {
			fmt.Fprintf(w, "  %-3d %-15s ", seg.Index, seg.Name)
			if seg.Fixed() {
				fmt.Fprintf(w, "count=%d", seg.Count)
			} else {
				fmt.Fprint(w, "runtime")
			}
			fmt.Fprintln(w)
		}
	}
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	level := zapcore.WarnLevel
	if verbose {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `segbufgen generates typed segmented buffers.

Each struct annotated with "// @segments" becomes a buffer type whose
constructor takes one Descriptor per field, in declaration order, and
whose accessor methods are named after the fields.

Usage:
  segbufgen [flags] file.go...

Typical use:
  //go:generate go run github.com/alexhholmes/segbuf/cmd/segbufgen $GOFILE

Flags:
`)
	flagSet.PrintDefaults()
}
