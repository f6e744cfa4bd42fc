package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeKind says where a segment's element count comes from.
type SizeKind int

const (
	Runtime SizeKind = iota // count passed to the constructor
	Fixed                   // count=N, known when generating
	Skipped                 // "-": field is not a segment
)

func (k SizeKind) String() string {
	switch k {
	case Runtime:
		return "runtime"
	case Fixed:
		return "fixed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// FieldSegment is the parsed `segment` struct tag of one field
type FieldSegment struct {
	Kind  SizeKind
	Count int // -1 unless Kind == Fixed
}

// ParseTag parses segment struct tags
//
// Semantics:
//   - ""          : Segment sized at construction (same as no tag)
//   - "count=N"   : Segment of exactly N elements, N >= 0
//   - "-"         : Not a segment
//
// Examples:
//
//	""          → Runtime
//	"count=16"  → Fixed, 16 elements
//	"-"         → Skipped
func ParseTag(tag string) (*FieldSegment, error) {
	f := &FieldSegment{Kind: Runtime, Count: -1}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return f, nil
	}
	if tag == "-" {
		f.Kind = Skipped
		return f, nil
	}

	for _, part := range strings.Split(tag, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid segment parameter: %s", part)
		}

		switch key {
		case "count":
			if f.Kind == Fixed {
				return nil, fmt.Errorf("count given twice")
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid count: %s", value)
			}
			if n < 0 {
				return nil, fmt.Errorf("count must not be negative, got: %d", n)
			}
			f.Kind = Fixed
			f.Count = n
		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return f, nil
}
