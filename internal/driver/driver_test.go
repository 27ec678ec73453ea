package driver

import (
	"bytes"
	"testing"

	"github.com/jward/callgraph/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndSelect(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	idx := r.Register("plain", NewPlain(Options{}))
	assert.Equal(t, 0, idx)
	assert.False(t, r.HasSelection())

	require.NoError(t, r.Select("plain"))
	assert.True(t, r.HasSelection())
	assert.NotNil(t, r.Selected())
}

func TestRegistrySelectUnknownNameReturnsErrNotFound(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Register("plain", NewPlain(Options{}))

	err := r.Select("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, r.HasSelection())
}

func TestRegistrySelectedPanicsWithoutSelection(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	assert.Panics(t, func() { r.Selected() })
}

func TestRegistryRegisterPastCapacityPanics(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	for i := 0; i < MaxDrivers; i++ {
		r.Register("d", NewPlain(Options{}))
	}
	assert.Panics(t, func() { r.Register("overflow", NewPlain(Options{})) })
}

func TestLevelMarkDefaultsAndGrows(t *testing.T) {
	t.Parallel()
	lm := NewLevelMark()
	assert.Equal(t, byte(0), lm.At(0))
	assert.Equal(t, byte(0), lm.At(500))

	lm.Set(300, 1)
	assert.Equal(t, byte(1), lm.At(300))
	assert.Equal(t, byte(0), lm.At(299))
}

func symbolFor(name, source string, line int) *symtab.Symbol {
	return &symtab.Symbol{Name: name, Source: source, DefLine: line}
}

func TestPlainDriverSymbolWithChildrenHasColon(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{})

	_, err := h(Symbol, &Context{Out: &buf, Sym: &SymbolEvent{
		Level: 0, Sym: symbolFor("main", "main.c", 1), HasChildren: true,
	}})
	require.NoError(t, err)
	assert.Equal(t, "main() <main.c:1>:", buf.String())
}

func TestPlainDriverSymbolWithoutChildrenOmitsColon(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{})

	_, err := h(Symbol, &Context{Out: &buf, Sym: &SymbolEvent{
		Level: 2, Sym: symbolFor("b", "main.c", 5), HasChildren: false,
	}})
	require.NoError(t, err)
	assert.Equal(t, "        b() <main.c:5>", buf.String())
}

func TestPlainDriverLineNumbersAndLevels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{PrintLevels: true, PrintLineNumbers: true})

	_, err := h(Symbol, &Context{
		Out:  &buf,
		Line: 7,
		Sym:  &SymbolEvent{Level: 1, Sym: symbolFor("a", "main.c", 3), HasChildren: false},
	})
	require.NoError(t, err)
	assert.Equal(t, "    7 {   1}     a() <main.c:3>", buf.String())
}

func TestGNUDriverDrawsContinuationBars(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	marks := NewLevelMark()
	marks.Set(0, 1)
	h := NewGNU(Options{Marks: marks})

	_, err := h(Symbol, &Context{Out: &buf, Sym: &SymbolEvent{
		Level: 1, Sym: symbolFor("a", "main.c", 3), HasChildren: false,
	}})
	require.NoError(t, err)
	assert.Equal(t, "|   a() <main.c:3>", buf.String())
}

func TestPOSIXDriverOmitsColon(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPOSIX(Options{})

	_, err := h(Symbol, &Context{Out: &buf, Sym: &SymbolEvent{
		Level: 0, Sym: symbolFor("main", "main.c", 1), HasChildren: true,
	}})
	require.NoError(t, err)
	assert.Equal(t, "main() <main.c:1>", buf.String())
}

func TestSymbolWithNoSourceOmitsLocation(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{})

	_, err := h(Symbol, &Context{Out: &buf, Sym: &SymbolEvent{
		Level: 0, Sym: &symtab.Symbol{Name: "extern_fn"}, HasChildren: false,
	}})
	require.NoError(t, err)
	assert.Equal(t, "extern_fn()", buf.String())
}

func TestNewlineIncrementsNothingItselfButWritesBreak(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{})
	_, err := h(Newline, &Context{Out: &buf})
	require.NoError(t, err)
	assert.Equal(t, "\n", buf.String())
}

func TestUnknownCommandReturnsError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPlain(Options{})
	_, err := h(Command(99), &Context{Out: &buf})
	assert.Error(t, err)
}
