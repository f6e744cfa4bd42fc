package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotesSource = `package book

import "github.com/alexhholmes/segbuf"

// @segments elem=float64
type Quotes struct {
	Bids segbuf.Tag
	Asks segbuf.Tag
}

type Tick struct {
	At    int64
	Price float64
}

// @segments elem=Tick name=TickLog
type Ticks struct {
	Recent segbuf.Tag
	Window segbuf.Tag ` + "`segment:\"count=64\"`" + `
}
`

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun_Generate(t *testing.T) {
	path := writeSource(t, "book.go", quotesSource)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{path}, &stdout, &stderr))

	out := filepath.Join(filepath.Dir(path), "book_segbuf.go")
	src, err := os.ReadFile(out)
	require.NoError(t, err)

	code := string(src)
	assert.Contains(t, code, "// Code generated by segbufgen from book.go. DO NOT EDIT.")
	assert.Contains(t, code, "func NewQuotesBuffer(bids segbuf.Descriptor[QuotesBids], asks segbuf.Descriptor[QuotesAsks], opts ...segbuf.Option[float64]) (*QuotesBuffer, error)")
	assert.Contains(t, code, "func NewTickLog(recent segbuf.Descriptor[TicksRecent], opts ...segbuf.Option[Tick]) (*TickLog, error)")

	_, err = parser.ParseFile(token.NewFileSet(), out, src, 0)
	assert.NoError(t, err)
	assert.Empty(t, stderr.String(), "default logging stays quiet")
}

func TestRun_OutputAndConfig(t *testing.T) {
	path := writeSource(t, "book.go", quotesSource)
	dir := filepath.Dir(path)

	cfgPath := filepath.Join(dir, "segbufgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("build_tags: [linux]\nheader: Generated for tests.\n"), 0o644))

	out := filepath.Join(dir, "custom.go")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--config", cfgPath, "-o", out, path}, &stdout, &stderr))

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "//go:build linux")
	assert.Contains(t, string(src), "// Generated for tests.")

	_, err = os.Stat(filepath.Join(dir, "book_segbuf.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_DryRun(t *testing.T) {
	path := writeSource(t, "book.go", quotesSource)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--dry-run", path}, &stdout, &stderr))

	summary := stdout.String()
	assert.Contains(t, summary, "Quotes -> QuotesBuffer (elem=float64, 8 bytes)")
	assert.Contains(t, summary, "Ticks -> TickLog (elem=Tick, 16 bytes)")
	assert.Contains(t, summary, "count=64")

	_, err := os.Stat(filepath.Join(filepath.Dir(path), "book_segbuf.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Verbose(t *testing.T) {
	path := writeSource(t, "book.go", quotesSource)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-v", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "analyzed layout")
	assert.Contains(t, stderr.String(), "generated buffer")
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "segbufgen ")
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(nil, &stdout, &stderr)
	assert.ErrorContains(t, err, "no input files")

	a := writeSource(t, "a.go", quotesSource)
	b := writeSource(t, "b.go", quotesSource)
	err = run([]string{"-o", "x.go", a, b}, &stdout, &stderr)
	assert.ErrorContains(t, err, "exactly one input file")

	bad := writeSource(t, "bad.go", `package bad

import "github.com/alexhholmes/segbuf"

// @segments elem=string
type Names struct {
	First segbuf.Tag
	First2, TotalSize segbuf.Tag
}
`)
	err = run([]string{bad}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.go:6:6: Names: element type")
	assert.Contains(t, err.Error(), "TotalSize clashes with generated method")

	err = run([]string{"--bogus"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestRun_ExampleUpToDate(t *testing.T) {
	for _, name := range []string{"segments.go", "class.go"} {
		t.Run(name, func(t *testing.T) {
			input := filepath.Join("..", "..", "example", name)
			want, err := os.ReadFile(filepath.Join("..", "..", "example", name[:len(name)-3]+"_segbuf.go"))
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), "out.go")
			var stdout, stderr bytes.Buffer
			require.NoError(t, run([]string{"-o", out, input}, &stdout, &stderr))

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got), "run go generate ./example")
		})
	}
}

func TestRun_SiblingFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		return path
	}

	write("tick.go", `package book

type Tick struct {
	At    int64
	Price float64
}
`)
	write("other.go", "package other\n\ntype TapeBuffer struct{}\n")
	write("broken.go", "package book\n\nfunc {\n")
	input := write("tape.go", `package book

import "github.com/alexhholmes/segbuf"

// @segments elem=Tick
type Tape struct {
	Recent segbuf.Tag
}
`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{input}, &stdout, &stderr), "element type comes from tick.go")

	// The previous output is a sibling now and must not count as a collision
	require.NoError(t, run([]string{input}, &stdout, &stderr))

	src, err := os.ReadFile(filepath.Join(dir, "tape_segbuf.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "segbuf.Buffer[Tick]")

	write("clash.go", "package book\n\ntype TapeRecent int\n")
	err = run([]string{input}, &stdout, &stderr)
	assert.ErrorContains(t, err, "tag type TapeRecent is already declared")
}

func TestRun_DryRunUnexported(t *testing.T) {
	path := writeSource(t, "class.go", `package p

import "github.com/alexhholmes/segbuf"

// @segments elem=float64
type classSegments struct {
	one segbuf.Tag
}
`)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-n", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "classSegments -> classSegmentsBuffer (elem=float64, 8 bytes, unexported)")
}
