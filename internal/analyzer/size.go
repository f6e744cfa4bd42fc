package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexhholmes/segbuf/internal/parser"
)

var ErrNotPlain = errors.New("not plain data")

// wordSize is the size of int, uint and uintptr on the target.
const wordSize = strconv.IntSize / 8

type typeInfo struct {
	size  int
	align int
}

var builtins = map[string]typeInfo{
	"bool":       {1, 1},
	"uint8":      {1, 1},
	"int8":       {1, 1},
	"byte":       {1, 1},
	"uint16":     {2, 2},
	"int16":      {2, 2},
	"uint32":     {4, 4},
	"int32":      {4, 4},
	"rune":       {4, 4},
	"float32":    {4, 4},
	"uint64":     {8, 8},
	"int64":      {8, 8},
	"float64":    {8, 8},
	"complex64":  {8, 4},
	"complex128": {16, 8},
	"int":        {wordSize, wordSize},
	"uint":       {wordSize, wordSize},
	"uintptr":    {wordSize, wordSize},
}

// SizeOf returns the size in bytes of a builtin Go type or an array of one.
// Types that hold pointers are rejected with ErrNotPlain; named types need
// a TypeRegistry.
func SizeOf(goType string) (int, error) {
	info, err := NewTypeRegistry().lookup(goType, nil)
	return info.size, err
}

var arrayRe = regexp.MustCompile(`^\[(\d+)\](.+)$`)

// notPlain reports why goType can never be plain data, or "" if it might be.
func notPlain(goType string) string {
	switch {
	case goType == "string":
		return "strings hold a pointer"
	case strings.HasPrefix(goType, "*"):
		return "pointer types not supported"
	case strings.HasPrefix(goType, "[]"):
		return "slices hold a pointer"
	case strings.HasPrefix(goType, "map["):
		return "maps hold a pointer"
	case strings.HasPrefix(goType, "chan "):
		return "channels hold a pointer"
	case goType == "func":
		return "funcs hold a pointer"
	case goType == "interface", goType == "any", goType == "error":
		return "interfaces hold a pointer"
	case goType == "unsafe.Pointer":
		return "pointer types not supported"
	}
	return ""
}

// TypeRegistry tracks struct layouts and type aliases for element analysis
type TypeRegistry struct {
	types   map[string]typeInfo // resolved struct layouts
	aliases map[string]string   // alias → underlying type
	structs map[string][]string // unresolved struct name → field types
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:   make(map[string]typeInfo),
		aliases: make(map[string]string),
		structs: make(map[string][]string),
	}
}

// RegisterAlias adds a type alias mapping (e.g., type Price float64)
func (r *TypeRegistry) RegisterAlias(alias, underlying string) {
	r.aliases[alias] = underlying
}

// RegisterStruct adds a struct whose layout is computed from its field
// types on first use
func (r *TypeRegistry) RegisterStruct(name string, fieldTypes []string) {
	r.structs[name] = fieldTypes
}

// RegisterFile adds every struct and alias declared in a parsed file
func (r *TypeRegistry) RegisterFile(f *parser.File) {
	for name, fields := range f.Structs {
		r.RegisterStruct(name, fields)
	}
	for alias, underlying := range f.Aliases {
		r.RegisterAlias(alias, underlying)
	}
}

// ResolveType resolves type aliases to their underlying types
// Returns the original type if not an alias
func (r *TypeRegistry) ResolveType(goType string) string {
	seen := make(map[string]bool)
	for {
		underlying, ok := r.aliases[goType]
		if !ok || seen[goType] {
			return goType
		}
		seen[goType] = true
		goType = underlying
	}
}

// SizeOf calculates the size of goType using the registry for named types
func (r *TypeRegistry) SizeOf(goType string) (int, error) {
	info, err := r.lookup(goType, nil)
	return info.size, err
}

// AlignOf returns the alignment Go gives goType
func (r *TypeRegistry) AlignOf(goType string) (int, error) {
	info, err := r.lookup(goType, nil)
	return info.align, err
}

func (r *TypeRegistry) lookup(goType string, visiting map[string]bool) (typeInfo, error) {
	if why := notPlain(goType); why != "" {
		return typeInfo{}, fmt.Errorf("%w: %s: %s", ErrNotPlain, goType, why)
	}

	// Arrays: [N]T
	if strings.HasPrefix(goType, "[") {
		matches := arrayRe.FindStringSubmatch(goType)
		if matches == nil {
			return typeInfo{}, fmt.Errorf("invalid array type: %s", goType)
		}
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return typeInfo{}, fmt.Errorf("invalid array length: %s", matches[1])
		}
		elem, err := r.lookup(matches[2], visiting)
		if err != nil {
			return typeInfo{}, fmt.Errorf("array element: %w", err)
		}
		return typeInfo{size: n * elem.size, align: elem.align}, nil
	}

	if info, ok := builtins[goType]; ok {
		return info, nil
	}
	if info, ok := r.types[goType]; ok {
		return info, nil
	}

	// Resolve type aliases
	if resolved := r.ResolveType(goType); resolved != goType {
		return r.lookup(resolved, visiting)
	}

	fields, ok := r.structs[goType]
	if !ok {
		if strings.Contains(goType, ".") {
			return typeInfo{}, fmt.Errorf("unknown type: %s (types from other packages cannot be checked; declare a local struct)", goType)
		}
		return typeInfo{}, fmt.Errorf("unknown type: %s (not registered)", goType)
	}

	if visiting == nil {
		visiting = make(map[string]bool)
	}
	if visiting[goType] {
		return typeInfo{}, fmt.Errorf("recursive type: %s", goType)
	}
	visiting[goType] = true
	defer delete(visiting, goType)

	info, err := r.structLayout(goType, fields, visiting)
	if err != nil {
		return typeInfo{}, err
	}
	r.types[goType] = info
	return info, nil
}

// structLayout lays fields out the way the Go compiler does: each field at
// the next multiple of its alignment, total rounded up to the largest one.
func (r *TypeRegistry) structLayout(name string, fields []string, visiting map[string]bool) (typeInfo, error) {
	offset, maxAlign := 0, 1
	for i, fieldType := range fields {
		f, err := r.lookup(fieldType, visiting)
		if err != nil {
			return typeInfo{}, fmt.Errorf("%s field %d: %w", name, i, err)
		}
		offset = roundUp(offset, f.align)
		offset += f.size
		maxAlign = max(maxAlign, f.align)
	}
	// A trailing zero-size field gets a byte of padding so its address
	// stays inside the struct
	if n := len(fields); n > 0 && offset > 0 {
		if last, _ := r.lookup(fields[n-1], visiting); last.size == 0 {
			offset++
		}
	}
	return typeInfo{size: roundUp(offset, maxAlign), align: maxAlign}, nil
}

func roundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
