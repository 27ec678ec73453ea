package callgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIncludeAcceptsTokensAndExternOrStaticIdentifiers(t *testing.T) {
	tok := &Symbol{Type: Token}
	ext := &Symbol{Type: Identifier, Storage: Extern}
	stat := &Symbol{Type: Identifier, Storage: Static}
	auto := &Symbol{Type: Identifier, Storage: Auto}
	undef := &Symbol{Type: Undefined}

	assert.True(t, DefaultInclude(tok))
	assert.True(t, DefaultInclude(ext))
	assert.True(t, DefaultInclude(stat))
	assert.False(t, DefaultInclude(auto))
	assert.False(t, DefaultInclude(undef))
}

func TestGlobalsOnlyDropsStaticsButKeepsTokens(t *testing.T) {
	ext := &Symbol{Type: Identifier, Storage: Extern}
	stat := &Symbol{Type: Identifier, Storage: Static}
	tok := &Symbol{Type: Token}

	assert.True(t, GlobalsOnly(ext))
	assert.False(t, GlobalsOnly(stat))
	assert.True(t, GlobalsOnly(tok))
}

func TestBriefAcceptsExternRegardlessOfReferences(t *testing.T) {
	sym := &Symbol{Type: Identifier, Storage: Extern}
	assert.True(t, Brief(sym))
}

func TestBriefRejectsStaticReferencedFromOneFile(t *testing.T) {
	g := NewGraph()
	sym := installFn(g, "helper", "a.c", 3)
	sym.Storage = Static
	g.Table().AddReference(sym, "a.c", 10)

	assert.False(t, Brief(sym))
}

func TestBriefAcceptsStaticReferencedFromTwoFiles(t *testing.T) {
	g := NewGraph()
	sym := installFn(g, "helper", "a.c", 3)
	sym.Storage = Static
	g.Table().AddReference(sym, "a.c", 10)
	g.Table().AddReference(sym, "b.c", 4)

	assert.True(t, Brief(sym))
}

func TestOmitNamesRejectsOnlyListedNames(t *testing.T) {
	f := OmitNames([]string{"a", "b"})
	assert.False(t, f(&Symbol{Name: "a"}))
	assert.False(t, f(&Symbol{Name: "b"}))
	assert.True(t, f(&Symbol{Name: "c"}))
}

func TestOmitNamesWithNoNamesAcceptsEverything(t *testing.T) {
	f := OmitNames(nil)
	assert.True(t, f(&Symbol{Name: "anything"}))
}

func TestAndRequiresEveryFilterToAccept(t *testing.T) {
	alwaysTrue := func(*Symbol) bool { return true }
	alwaysFalse := func(*Symbol) bool { return false }

	assert.True(t, And(alwaysTrue, alwaysTrue)(&Symbol{}))
	assert.False(t, And(alwaysTrue, alwaysFalse)(&Symbol{}))
}

func TestAndWithNoFiltersAcceptsEverything(t *testing.T) {
	assert.True(t, And()(&Symbol{}))
}
