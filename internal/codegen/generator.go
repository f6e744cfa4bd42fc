package codegen

import (
	"fmt"
	"strings"

	"github.com/alexhholmes/segbuf/internal/analyzer"
)

// Generator generates a typed buffer for one analyzed layout
type Generator struct {
	analyzed *analyzer.AnalyzedLayout
}

// NewGenerator creates a new code generator
func NewGenerator(analyzed *analyzer.AnalyzedLayout) *Generator {
	return &Generator{analyzed: analyzed}
}

// NeedsAlloc returns true if the generated code imports the alloc package
func (g *Generator) NeedsAlloc() bool {
	return g.analyzed.Align > 0
}

// Identifiers returns every package-level name the generated code declares
func (g *Generator) Identifiers() []string {
	a := g.analyzed
	names := []string{a.BufferName, a.ConstructorName()}
	for _, seg := range a.Segments {
		names = append(names, a.TagTypeName(seg), a.IndexName(seg))
	}
	return names
}

// Generate returns the generated code for this type (without package header/imports)
func (g *Generator) Generate() (string, error) {
	if !g.analyzed.IsValid() {
		return "", fmt.Errorf("%s: cannot generate invalid layout: %s",
			g.analyzed.TypeName, strings.Join(g.analyzed.Errors, "; "))
	}

	var out strings.Builder

	out.WriteString(g.GenerateTagTypes())
	out.WriteString(g.GenerateIndexes())
	out.WriteString(g.GenerateBuffer())
	out.WriteString(g.GenerateAccessors())
	out.WriteString(g.GenerateCommon())

	return out.String(), nil
}

// GenerateTagTypes generates one empty struct type per tag
func (g *Generator) GenerateTagTypes() string {
	var code strings.Builder
	a := g.analyzed

	for _, seg := range a.Segments {
		name := a.TagTypeName(seg)
		if seg.Fixed() {
			code.WriteString(fmt.Sprintf("// %s identifies the %s segment of %s, fixed at %d elements.\n",
				name, seg.Name, a.BufferName, seg.Count))
		} else {
			code.WriteString(fmt.Sprintf("// %s identifies the %s segment of %s.\n", name, seg.Name, a.BufferName))
		}
		code.WriteString(fmt.Sprintf("type %s struct{}\n\n", name))
	}

	return code.String()
}

// GenerateIndexes generates the boundary table index of each tag
func (g *Generator) GenerateIndexes() string {
	a := g.analyzed
	if len(a.Segments) == 0 {
		return ""
	}

	var code strings.Builder
	code.WriteString("const (\n")
	for _, seg := range a.Segments {
		code.WriteString(fmt.Sprintf("\t%s = %d\n", a.IndexName(seg), seg.Index))
	}
	code.WriteString(")\n\n")

	return code.String()
}

// GenerateBuffer generates the buffer type and its constructor
func (g *Generator) GenerateBuffer() string {
	var code strings.Builder
	a := g.analyzed

	code.WriteString(fmt.Sprintf("// %s holds the %s segments in one %s allocation.\n", a.BufferName, a.TypeName, a.Elem))
	code.WriteString(fmt.Sprintf("type %s struct {\n", a.BufferName))
	code.WriteString(fmt.Sprintf("\tbuf *segbuf.Buffer[%s]\n", a.Elem))
	code.WriteString("}\n\n")

	code.WriteString(g.constructorDoc())

	// Signature: one typed descriptor per runtime tag, in declaration order
	var params []string
	for _, seg := range a.RuntimeSegments() {
		params = append(params, fmt.Sprintf("%s segbuf.Descriptor[%s]", a.ParamName(seg), a.TagTypeName(seg)))
	}
	params = append(params, fmt.Sprintf("opts ...segbuf.Option[%s]", a.Elem))
	code.WriteString(fmt.Sprintf("func %s(%s) (*%s, error) {\n", a.ConstructorName(), strings.Join(params, ", "), a.BufferName))

	code.WriteString(g.allocatorSetup())

	counts := "nil"
	if len(a.Segments) > 0 {
		var parts []string
		for _, seg := range a.Segments {
			if seg.Fixed() {
				parts = append(parts, fmt.Sprintf("%d", seg.Count))
			} else {
				parts = append(parts, a.ParamName(seg)+".Count()")
			}
		}
		counts = "[]int{" + strings.Join(parts, ", ") + "}"
	}

	code.WriteString(fmt.Sprintf("\tbuf, err := segbuf.New[%s](%s, opts...)\n", a.Elem, counts))
	code.WriteString("\tif err != nil {\n")
	code.WriteString("\t\treturn nil, err\n")
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn &%s{buf: buf}, nil\n", a.BufferName))
	code.WriteString("}\n\n")

	return code.String()
}

func (g *Generator) constructorDoc() string {
	a := g.analyzed
	name := a.ConstructorName()

	var names []string
	for _, seg := range a.RuntimeSegments() {
		names = append(names, seg.Name)
	}

	switch {
	case len(a.Segments) == 0:
		return fmt.Sprintf("// %s allocates an empty %s.\n", name, a.BufferName)
	case len(names) == 0:
		return fmt.Sprintf("// %s allocates a %s; every segment has a fixed size.\n", name, a.BufferName)
	default:
		return fmt.Sprintf("// %s allocates a %s. Descriptors follow declaration order: %s.\n",
			name, a.BufferName, strings.Join(names, ", "))
	}
}

// allocatorSetup prepends the annotated allocator to opts; caller options
// still win because later options override earlier ones
func (g *Generator) allocatorSetup() string {
	var code strings.Builder
	a := g.analyzed

	switch {
	case a.Align > 0:
		code.WriteString(fmt.Sprintf("\tallocator, err := alloc.NewAligned[%s](%d)\n", a.Elem, a.Align))
	case a.Allocator != "":
		code.WriteString(fmt.Sprintf("\tallocator, err := %s()\n", a.Allocator))
	default:
		return ""
	}

	code.WriteString("\tif err != nil {\n")
	code.WriteString("\t\treturn nil, err\n")
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\topts = append([]segbuf.Option[%s]{segbuf.WithAllocator[%s](allocator)}, opts...)\n\n",
		a.Elem, a.Elem))

	return code.String()
}

// GenerateAccessors generates the mutable and read-only accessor of each tag
func (g *Generator) GenerateAccessors() string {
	var code strings.Builder
	a := g.analyzed

	for _, seg := range a.Segments {
		index := a.IndexName(seg)

		code.WriteString(fmt.Sprintf("// %s returns the %s segment.\n", seg.Name, seg.Name))
		code.WriteString(fmt.Sprintf("func (b *%s) %s() []%s {\n", a.BufferName, seg.Name, a.Elem))
		code.WriteString(fmt.Sprintf("\treturn b.buf.Segment(%s)\n", index))
		code.WriteString("}\n\n")

		code.WriteString(fmt.Sprintf("// %sView returns a read-only view of the %s segment.\n", seg.Name, seg.Name))
		code.WriteString(fmt.Sprintf("func (b *%s) %sView() segbuf.View[%s] {\n", a.BufferName, seg.Name, a.Elem))
		code.WriteString(fmt.Sprintf("\treturn b.buf.View(%s)\n", index))
		code.WriteString("}\n\n")
	}

	return code.String()
}

// GenerateCommon generates the methods every buffer has
func (g *Generator) GenerateCommon() string {
	var code strings.Builder
	a := g.analyzed

	code.WriteString(fmt.Sprintf("// TotalSize returns the number of %s elements across all segments.\n", a.Elem))
	code.WriteString(fmt.Sprintf("func (b *%s) TotalSize() int {\n", a.BufferName))
	code.WriteString("\treturn b.buf.TotalSize()\n")
	code.WriteString("}\n\n")

	code.WriteString("// NumSegments returns the number of declared segments.\n")
	code.WriteString(fmt.Sprintf("func (b *%s) NumSegments() int {\n", a.BufferName))
	code.WriteString("\treturn b.buf.NumSegments()\n")
	code.WriteString("}\n\n")

	code.WriteString("// Bounds returns a copy of the boundary table.\n")
	code.WriteString(fmt.Sprintf("func (b *%s) Bounds() segbuf.Boundaries {\n", a.BufferName))
	code.WriteString("\treturn b.buf.Bounds()\n")
	code.WriteString("}\n\n")

	code.WriteString("// Clone returns a deep copy with its own allocation.\n")
	code.WriteString(fmt.Sprintf("func (b *%s) Clone() (*%s, error) {\n", a.BufferName, a.BufferName))
	code.WriteString("\tbuf, err := b.buf.Clone()\n")
	code.WriteString("\tif err != nil {\n")
	code.WriteString("\t\treturn nil, err\n")
	code.WriteString("\t}\n")
	code.WriteString(fmt.Sprintf("\treturn &%s{buf: buf}, nil\n", a.BufferName))
	code.WriteString("}\n\n")

	code.WriteString("// Release returns the allocation to its allocator. Segments obtained\n")
	code.WriteString("// earlier must not be used afterwards.\n")
	code.WriteString(fmt.Sprintf("func (b *%s) Release() error {\n", a.BufferName))
	code.WriteString("\treturn b.buf.Release()\n")
	code.WriteString("}\n\n")

	return code.String()
}
