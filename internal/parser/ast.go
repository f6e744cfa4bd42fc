package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
)

// File holds everything the generator needs from one Go source file
type File struct {
	Package string
	Types   []*TypeLayout // @segments types in source order

	// Candidate element types declared in the same file
	Structs map[string][]string // struct name → field types, in order
	Aliases map[string]string   // defined or alias type → underlying type
	Names   map[string]bool     // every type name declared at package level

	Generated bool // carries a "Code generated ... DO NOT EDIT." notice
}

// TypeLayout represents a parsed struct with a @segments annotation
type TypeLayout struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field // one per segment tag, in declaration order
	Pos    token.Position
}

// Field represents one declared segment tag
type Field struct {
	Name    string
	GoType  string
	Segment *FieldSegment
}

// ParseFile parses a Go source file and extracts types with @segments annotations
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is ParseFile for in-memory source. src may be nil, in which
// case filename is read from disk.
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return extractFile(fset, file)
}

func extractFile(fset *token.FileSet, file *ast.File) (*File, error) {
	out := &File{
		Package:   file.Name.Name,
		Generated: ast.IsGenerated(file),
		Structs:   make(map[string][]string),
		Aliases:   make(map[string]string),
		Names:     make(map[string]bool),
	}
	var errs []error

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			name := typeSpec.Name.Name
			out.Names[name] = true

			// A doc comment on a single-spec decl hangs off the GenDecl
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}

			anno, found, err := extractAnnotation(doc)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %s: %w", fset.Position(typeSpec.Pos()), name, err))
				continue
			}

			structType, isStruct := typeSpec.Type.(*ast.StructType)
			if !found {
				// Not a segment declaration; remember it as a possible element type
				if isStruct && typeSpec.TypeParams == nil {
					out.Structs[name] = structFieldTypes(structType)
				} else if !isStruct {
					out.Aliases[name] = typeToString(typeSpec.Type)
				}
				continue
			}

			if !isStruct {
				errs = append(errs, fmt.Errorf("%s: %s: @segments requires a struct type",
					fset.Position(typeSpec.Pos()), name))
				continue
			}

			fields, err := extractFields(structType)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %s: %w", fset.Position(typeSpec.Pos()), name, err))
				continue
			}

			out.Types = append(out.Types, &TypeLayout{
				Name:   name,
				Anno:   anno,
				Fields: fields,
				Pos:    fset.Position(typeSpec.Pos()),
			})
		}
	}

	if len(errs) > 0 {
		return out, errors.Join(errs...)
	}
	return out, nil
}

func extractAnnotation(doc *ast.CommentGroup) (*TypeAnnotation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	// Extract comment text lines
	var lines []string
	for _, comment := range doc.List {
		for _, line := range strings.Split(comment.Text, "\n") {
			lines = append(lines, CleanComment(line))
		}
	}

	return FindAnnotation(lines)
}

func extractFields(structType *ast.StructType) ([]Field, error) {
	var fields []Field

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue // Embedded field, skip
		}

		seg := &FieldSegment{Kind: Runtime, Count: -1}
		if field.Tag != nil {
			tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
			if value, ok := tag.Lookup("segment"); ok {
				parsed, err := ParseTag(value)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", field.Names[0].Name, err)
				}
				seg = parsed
			}
		}
		if seg.Kind == Skipped {
			continue
		}

		goType := typeToString(field.Type)

		// "A, B segbuf.Tag" declares two segments
		for _, ident := range field.Names {
			if ident.Name == "_" {
				continue
			}
			s := *seg
			fields = append(fields, Field{
				Name:    ident.Name,
				GoType:  goType,
				Segment: &s,
			})
		}
	}

	return fields, nil
}

func structFieldTypes(structType *ast.StructType) []string {
	var types []string
	for _, field := range structType.Fields.List {
		goType := typeToString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1 // embedded
		}
		for range n {
			types = append(types, goType)
		}
	}
	return types
}

// typeToString converts AST type expression to string
// Types that cannot be plain data keep a recognizable prefix so the
// analyzer can name them in its errors
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		// Simple type: float64, Vec3, etc.
		return t.Name

	case *ast.SelectorExpr:
		// Qualified type: segbuf.Tag, geom.Point
		return exprToString(t.X) + "." + t.Sel.Name

	case *ast.ArrayType:
		if t.Len == nil {
			// Slice: []byte
			return "[]" + typeToString(t.Elt)
		}
		// Array: [8]byte
		return fmt.Sprintf("[%s]%s", exprToString(t.Len), typeToString(t.Elt))

	case *ast.StarExpr:
		return "*" + typeToString(t.X)

	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)

	case *ast.ChanType:
		return "chan " + typeToString(t.Value)

	case *ast.FuncType:
		return "func"

	case *ast.InterfaceType:
		return "interface"

	case *ast.StructType:
		return "struct"

	case *ast.ParenExpr:
		return typeToString(t.X)

	default:
		return "unknown"
	}
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e.Value
	case *ast.Ident:
		return e.Name
	default:
		return "?"
	}
}
