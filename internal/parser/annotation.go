package parser

import (
	"fmt"
	"go/token"
	"regexp"
	"strconv"
	"strings"
)

// TypeAnnotation holds a parsed @segments annotation
type TypeAnnotation struct {
	Elem      string // Element type of every segment ("" = use configured default)
	Name      string // Generated buffer type name ("" = <Type>Buffer)
	Align     int    // Alignment in bytes (0 = no alignment requirement)
	Allocator string // Allocator factory function name (optional)
}

var (
	annotationRe = regexp.MustCompile(`^@segments(?:\s+(.*))?$`)
	markerRe     = regexp.MustCompile(`^@segments(\s|$)`)
	pairRe       = regexp.MustCompile(`^(\w+)=([\w.\[\]]+)$`)
)

// ParseAnnotation parses @segments annotation from comment text
//
// Expected format:
//
//	// @segments
//	// @segments elem=float64
//	// @segments elem=Vec3 align=64
//	// @segments elem=uint64 allocator=pageAllocator name=IndexArena
//
// Params are space-separated key=value pairs.
func ParseAnnotation(comment string) (*TypeAnnotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, fmt.Errorf("no @segments annotation found")
	}

	anno := &TypeAnnotation{}
	if strings.TrimSpace(matches[1]) == "" {
		return anno, nil
	}

	for _, param := range strings.Fields(matches[1]) {
		pair := pairRe.FindStringSubmatch(param)
		if pair == nil {
			return nil, fmt.Errorf("malformed parameter: %s (expected key=value)", param)
		}
		key, value := pair[1], pair[2]

		switch key {
		case "elem":
			anno.Elem = value

		case "name":
			if !token.IsIdentifier(value) {
				return nil, fmt.Errorf("name must be a Go identifier, got: %s", value)
			}
			anno.Name = value

		case "align":
			align, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid align value: %s", value)
			}
			if align <= 0 || (align&(align-1)) != 0 {
				return nil, fmt.Errorf("align must be a power of 2, got: %d", align)
			}
			anno.Align = align

		case "allocator":
			if !token.IsIdentifier(value) {
				return nil, fmt.Errorf("allocator must be a function name, got: %s", value)
			}
			anno.Allocator = value

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for @segments annotation.
// A line that starts with @segments but fails to parse is reported as an
// error rather than skipped.
func FindAnnotation(comments []string) (*TypeAnnotation, bool, error) {
	for _, comment := range comments {
		if !markerRe.MatchString(comment) {
			continue
		}
		anno, err := ParseAnnotation(comment)
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @segments elem=float64" → "@segments elem=float64"
// "/* @segments elem=float64 */" → "@segments elem=float64"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimSpace(line)
		return line
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		return line
	}

	return line
}
