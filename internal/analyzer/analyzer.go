package analyzer

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alexhholmes/segbuf/internal/parser"
)

// Segment is one resolved tag of a buffer layout
type Segment struct {
	Name  string // Tag and accessor name, as declared
	Index int    // Position in the boundary table
	Count int    // Element count if fixed at generation time, -1 otherwise
}

// Fixed reports whether the segment size is a generation-time constant
func (s Segment) Fixed() bool {
	return s.Count >= 0
}

// AnalyzedLayout contains a validated buffer layout
type AnalyzedLayout struct {
	TypeName   string
	BufferName string
	Elem       string
	ElemSize   int
	ElemAlign  int
	Align      int
	Allocator  string
	Segments   []Segment
	Errors     []string // Validation errors
}

// Options carries file-level context into Analyze
type Options struct {
	// DefaultElem is used when the annotation has no elem= parameter
	DefaultElem string
	// Declared holds type names already taken in the package
	Declared map[string]bool
}

// Methods every generated buffer has; no tag may shadow them.
var reservedMethods = map[string]bool{
	"TotalSize":   true,
	"NumSegments": true,
	"Bounds":      true,
	"Release":     true,
	"Clone":       true,
	"buf":         true, // wrapper field
}

// Names the generated constructor uses for its own locals and imports
var constructorLocals = map[string]bool{
	"opts":      true,
	"buf":       true,
	"err":       true,
	"allocator": true,
	"segbuf":    true,
	"alloc":     true,
}

// Analyze performs layout analysis on a parsed type
func Analyze(layout *parser.TypeLayout, registry *TypeRegistry, opts Options) (*AnalyzedLayout, error) {
	if layout == nil {
		return nil, fmt.Errorf("layout is nil")
	}

	a := &AnalyzedLayout{
		TypeName:   layout.Name,
		BufferName: layout.Anno.Name,
		Elem:       layout.Anno.Elem,
		Align:      layout.Anno.Align,
		Allocator:  layout.Anno.Allocator,
	}
	if a.BufferName == "" {
		a.BufferName = layout.Name + "Buffer"
	}
	if a.Elem == "" {
		a.Elem = opts.DefaultElem
	}

	// Phase 1: Element type
	if err := resolveElem(a, registry); err != nil {
		a.Errors = append(a.Errors, err.Error())
	}

	// Phase 2: Allocation options
	if a.Align > 0 && a.Allocator != "" {
		a.Errors = append(a.Errors, "align and allocator are mutually exclusive")
	}
	if a.Align > 0 && a.ElemAlign > 0 && a.Align < a.ElemAlign {
		a.Errors = append(a.Errors, fmt.Sprintf("align %d is below the %d-byte alignment of %s",
			a.Align, a.ElemAlign, a.Elem))
	}

	// Phase 3: Resolve tags to indexes
	buildSegments(a, layout)

	// Phase 4: Detect collisions
	detectCollisions(a)
	detectDeclared(a, opts.Declared)

	if len(a.Errors) > 0 {
		return a, fmt.Errorf("%s: layout has %d errors", layout.Name, len(a.Errors))
	}

	return a, nil
}

func resolveElem(a *AnalyzedLayout, registry *TypeRegistry) error {
	if a.Elem == "" {
		return fmt.Errorf("no element type: add elem= to the annotation or set default_elem")
	}
	size, err := registry.SizeOf(a.Elem)
	if err != nil {
		return fmt.Errorf("element type: %w", err)
	}
	align, err := registry.AlignOf(a.Elem)
	if err != nil {
		return fmt.Errorf("element type: %w", err)
	}
	a.ElemSize = size
	a.ElemAlign = align
	return nil
}

func buildSegments(a *AnalyzedLayout, layout *parser.TypeLayout) {
	seen := make(map[string]bool, len(layout.Fields))

	for _, field := range layout.Fields {
		if !isTagType(field.GoType) {
			a.Errors = append(a.Errors, fmt.Sprintf("%s: field type %s is not segbuf.Tag (use segment:\"-\" to skip it)",
				field.Name, field.GoType))
			continue
		}
		if seen[field.Name] {
			a.Errors = append(a.Errors, fmt.Sprintf("%s: duplicate tag", field.Name))
			continue
		}
		seen[field.Name] = true

		count := -1
		if field.Segment != nil && field.Segment.Kind == parser.Fixed {
			count = field.Segment.Count
		}

		a.Segments = append(a.Segments, Segment{
			Name:  field.Name,
			Index: len(a.Segments),
			Count: count,
		})
	}
}

func detectCollisions(a *AnalyzedLayout) {
	// Every tag produces <Tag>() and <Tag>View()
	methods := make(map[string]string)
	for name := range reservedMethods {
		methods[name] = "generated method"
	}

	for _, seg := range a.Segments {
		for _, method := range []string{seg.Name, seg.Name + "View"} {
			if owner, ok := methods[method]; ok {
				a.Errors = append(a.Errors, fmt.Sprintf("collision: %s accessor %s clashes with %s",
					seg.Name, method, owner))
				continue
			}
			methods[method] = "tag " + seg.Name
		}
	}

	// Tags differing only in the case of their first letter share a tag
	// type and a constructor parameter
	typeNames := make(map[string]string)
	for _, seg := range a.Segments {
		name := a.TagTypeName(seg)
		if other, ok := typeNames[name]; ok {
			a.Errors = append(a.Errors, fmt.Sprintf("collision: tags %s and %s both generate %s",
				other, seg.Name, name))
			continue
		}
		typeNames[name] = seg.Name
	}

	params := make(map[string]string)
	for _, seg := range a.RuntimeSegments() {
		name := a.ParamName(seg)
		if other, ok := params[name]; ok {
			a.Errors = append(a.Errors, fmt.Sprintf("collision: tags %s and %s both generate parameter %s",
				other, seg.Name, name))
			continue
		}
		params[name] = seg.Name
	}
}

// isTagType accepts segbuf.Tag under any import name, and Tag inside
// package segbuf itself
func isTagType(goType string) bool {
	if goType == "Tag" {
		return true
	}
	pkg, name, ok := strings.Cut(goType, ".")
	return ok && name == "Tag" && token.IsIdentifier(pkg)
}

func detectDeclared(a *AnalyzedLayout, declared map[string]bool) {
	if declared[a.BufferName] {
		a.Errors = append(a.Errors, fmt.Sprintf("collision: buffer type %s is already declared", a.BufferName))
	}
	for _, seg := range a.Segments {
		if name := a.TagTypeName(seg); declared[name] {
			a.Errors = append(a.Errors, fmt.Sprintf("collision: tag type %s is already declared", name))
		}
	}
}

// IsValid returns true if layout has no errors
func (a *AnalyzedLayout) IsValid() bool {
	return len(a.Errors) == 0
}

// RuntimeSegments returns the segments sized at construction, in order
func (a *AnalyzedLayout) RuntimeSegments() []Segment {
	var out []Segment
	for _, seg := range a.Segments {
		if !seg.Fixed() {
			out = append(out, seg)
		}
	}
	return out
}

// Exported reports whether the generated buffer type is exported
func (a *AnalyzedLayout) Exported() bool {
	return token.IsExported(a.BufferName)
}

// TagTypeName is the type identifying seg in Descriptor[...] parameters
func (a *AnalyzedLayout) TagTypeName(seg Segment) string {
	return a.TypeName + upperFirst(seg.Name)
}

// ConstructorName is the generated constructor function
func (a *AnalyzedLayout) ConstructorName() string {
	if a.Exported() {
		return "New" + a.BufferName
	}
	return "new" + upperFirst(a.BufferName)
}

// IndexName is the unexported constant holding seg's boundary table index
func (a *AnalyzedLayout) IndexName(seg Segment) string {
	return lowerFirst(a.TypeName) + upperFirst(seg.Name) + "Index"
}

// ParamName is the constructor parameter carrying seg's descriptor. It
// never shadows a name the constructor body refers to.
func (a *AnalyzedLayout) ParamName(seg Segment) string {
	name := lowerFirst(seg.Name)
	switch {
	case token.IsKeyword(name), constructorLocals[name], types.Universe.Lookup(name) != nil,
		name == a.Allocator, name == a.Elem, name == a.BufferName:
		return name + "Seg"
	}
	return name
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
