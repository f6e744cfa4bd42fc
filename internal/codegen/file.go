package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"strings"

	"go.uber.org/zap"

	"github.com/alexhholmes/segbuf/internal/analyzer"
)

const (
	segbufImport = "github.com/alexhholmes/segbuf"
	allocImport  = "github.com/alexhholmes/segbuf/alloc"
)

// FileOptions controls the surroundings of a generated file
type FileOptions struct {
	Package   string
	BuildTags []string // joined with && into a //go:build line
	Header    string   // extra comment lines below the generated-code notice
	Source    string   // input file name, for the notice
}

// GenerateFile renders a complete, gofmt-formatted Go file holding one
// typed buffer per layout
func GenerateFile(layouts []*analyzer.AnalyzedLayout, opts FileOptions) ([]byte, error) {
	if opts.Package == "" {
		return nil, errors.New("package name is required")
	}

	gens := make([]*Generator, 0, len(layouts))
	owners := make(map[string]string)
	needsAlloc := false
	var errs []error

	for _, a := range layouts {
		g := NewGenerator(a)
		for _, name := range g.Identifiers() {
			if owner, ok := owners[name]; ok {
				errs = append(errs, fmt.Errorf("%s: generated name %s clashes with %s", a.TypeName, name, owner))
				continue
			}
			owners[name] = a.TypeName
		}
		needsAlloc = needsAlloc || g.NeedsAlloc()
		gens = append(gens, g)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var out strings.Builder
	out.WriteString(noticeLine(opts.Source))
	for _, line := range strings.Split(strings.TrimSpace(opts.Header), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out.WriteString("// " + strings.TrimPrefix(strings.TrimPrefix(line, "//"), " ") + "\n")
		}
	}
	out.WriteString("\n")

	if len(opts.BuildTags) > 0 {
		out.WriteString("//go:build " + strings.Join(opts.BuildTags, " && ") + "\n\n")
	}

	out.WriteString(fmt.Sprintf("package %s\n\n", opts.Package))

	out.WriteString("import (\n")
	out.WriteString(fmt.Sprintf("\t%q\n", segbufImport))
	if needsAlloc {
		out.WriteString(fmt.Sprintf("\t%q\n", allocImport))
	}
	out.WriteString(")\n\n")

	for _, g := range gens {
		code, err := g.Generate()
		if err != nil {
			return nil, err
		}
		Logger().Debug("generated buffer",
			zap.String("type", g.analyzed.TypeName),
			zap.String("buffer", g.analyzed.BufferName),
			zap.Int("segments", len(g.analyzed.Segments)))
		out.WriteString(code)
	}

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

func noticeLine(source string) string {
	if source == "" {
		return "// Code generated by segbufgen. DO NOT EDIT.\n"
	}
	return fmt.Sprintf("// Code generated by segbufgen from %s. DO NOT EDIT.\n", source)
}
