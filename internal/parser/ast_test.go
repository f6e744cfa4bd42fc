package parser

import (
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	file, err := ParseFile("testdata/simple.go")
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}

	if file.Package != "testdata" {
		t.Errorf("Package = %q, want %q", file.Package, "testdata")
	}

	// Should find 3 types: Quotes, Particles and Empty
	// Vec3, Mass and IgnoredType have no @segments annotation
	if len(file.Types) != 3 {
		t.Fatalf("ParseFile() found %d types, want 3", len(file.Types))
	}

	// Test Quotes
	quotes := file.Types[0]
	if quotes.Name != "Quotes" {
		t.Errorf("types[0].Name = %q, want %q", quotes.Name, "Quotes")
	}
	if quotes.Anno.Elem != "float64" {
		t.Errorf("Quotes.Anno.Elem = %q, want %q", quotes.Anno.Elem, "float64")
	}
	if len(quotes.Fields) != 2 {
		t.Fatalf("Quotes has %d fields, want 2", len(quotes.Fields))
	}
	if quotes.Fields[0].Name != "Bids" || quotes.Fields[1].Name != "Asks" {
		t.Errorf("Quotes fields = %q, %q; want Bids, Asks", quotes.Fields[0].Name, quotes.Fields[1].Name)
	}
	if quotes.Fields[0].GoType != "segbuf.Tag" {
		t.Errorf("fields[0].GoType = %q, want %q", quotes.Fields[0].GoType, "segbuf.Tag")
	}
	if quotes.Fields[0].Segment.Kind != Runtime {
		t.Errorf("fields[0].Segment.Kind = %v, want Runtime", quotes.Fields[0].Segment.Kind)
	}

	// Test Particles: multi-name field, fixed count, skipped field
	particles := file.Types[1]
	if particles.Anno.Elem != "Vec3" || particles.Anno.Align != 64 || particles.Anno.Name != "ParticleArena" {
		t.Errorf("Particles.Anno = %+v", *particles.Anno)
	}
	if len(particles.Fields) != 3 {
		t.Fatalf("Particles has %d fields, want 3", len(particles.Fields))
	}
	wantNames := []string{"Position", "Velocity", "Scratch"}
	for i, want := range wantNames {
		if particles.Fields[i].Name != want {
			t.Errorf("fields[%d].Name = %q, want %q", i, particles.Fields[i].Name, want)
		}
	}
	scratch := particles.Fields[2].Segment
	if scratch.Kind != Fixed || scratch.Count != 16 {
		t.Errorf("Scratch segment = {kind=%v, count=%d}, want {kind=Fixed, count=16}", scratch.Kind, scratch.Count)
	}

	// Test Empty
	empty := file.Types[2]
	if empty.Name != "Empty" || len(empty.Fields) != 0 {
		t.Errorf("Empty = {name=%q, fields=%d}, want {Empty, 0}", empty.Name, len(empty.Fields))
	}
	if empty.Anno.Elem != "" {
		t.Errorf("Empty.Anno.Elem = %q, want empty", empty.Anno.Elem)
	}

	// Element type candidates
	if got := file.Structs["Vec3"]; len(got) != 3 || got[0] != "float32" {
		t.Errorf("Structs[Vec3] = %v, want [float32 float32 float32]", got)
	}
	if file.Aliases["Mass"] != "float32" {
		t.Errorf("Aliases[Mass] = %q, want float32", file.Aliases["Mass"])
	}
	for _, name := range []string{"Quotes", "Vec3", "Mass", "Particles", "Empty", "IgnoredType"} {
		if !file.Names[name] {
			t.Errorf("Names missing %s", name)
		}
	}
}

func TestParseFileErrors(t *testing.T) {
	file, err := ParseFile("testdata/complex.go")
	if err == nil {
		t.Fatal("ParseFile() expected error")
	}

	msg := err.Error()
	for _, want := range []string{
		"BadParam: unknown parameter: bogus",
		"BadCount: field A: count must not be negative",
		"NotStruct: @segments requires a struct type",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}

	if len(file.Types) != 0 {
		t.Errorf("invalid declarations must not be returned, got %d", len(file.Types))
	}
}

func TestParseSourceDuplicateTags(t *testing.T) {
	// Duplicate field names parse fine; the analyzer rejects them
	src := `package p

// @segments elem=int8
type Dup struct {
	A, B segbuf.Tag
	A    segbuf.Tag
}
`
	file, err := ParseSource("dup.go", src)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if len(file.Types[0].Fields) != 3 {
		t.Fatalf("Dup has %d fields, want 3", len(file.Types[0].Fields))
	}
}

func TestParseSourceGroupedDecl(t *testing.T) {
	src := `package p

type (
	// @segments elem=uint16
	Grouped struct {
		X segbuf.Tag
	}

	Other struct{ Y uint8 }
)
`
	file, err := ParseSource("grouped.go", src)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	if len(file.Types) != 1 || file.Types[0].Name != "Grouped" {
		t.Fatalf("Types = %v, want [Grouped]", file.Types)
	}
	if _, ok := file.Structs["Other"]; !ok {
		t.Error("Other should be recorded as an element candidate")
	}
}

func TestTypeToString(t *testing.T) {
	src := `package p

type T struct {
	A uint32
	B [4]float64
	C *int
	D []byte
	E map[string]int
	F chan int
	G func()
	H interface{}
	I geom.Point
}
`
	file, err := ParseSource("types.go", src)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}

	want := []string{"uint32", "[4]float64", "*int", "[]byte", "map[string]int", "chan int", "func", "interface", "geom.Point"}
	got := file.Structs["T"]
	if len(got) != len(want) {
		t.Fatalf("got %d field types, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSourceGenerated(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"// Code generated by segbufgen from book.go. DO NOT EDIT.\n\npackage p\n", true},
		{"package p\n\ntype T struct{}\n", false},
	}

	for _, tt := range tests {
		file, err := ParseSource("x.go", tt.src)
		if err != nil {
			t.Fatalf("ParseSource() error: %v", err)
		}
		if file.Generated != tt.want {
			t.Errorf("Generated = %v, want %v for:\n%s", file.Generated, tt.want, tt.src)
		}
	}
}
