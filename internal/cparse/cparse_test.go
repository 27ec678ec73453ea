package cparse

import (
	"context"
	"testing"

	"github.com/jward/callgraph/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
int helper(int x) {
    return x + 1;
}

static int hidden(void) {
    return 0;
}

int main(void) {
    int n = helper(3);
    hidden();
    return n;
}
`

func TestWalkSourceInstallsFunctionsAndCalls(t *testing.T) {
	t.Parallel()
	tab := symtab.NewTable()
	col := New()

	require.NoError(t, col.WalkSource(context.Background(), tab, "sample.c", true, []byte(sample)))

	main := tab.Lookup("main")
	require.NotNil(t, main)
	assert.Equal(t, symtab.Identifier, main.Type)
	assert.Equal(t, symtab.Extern, main.Storage)
	assert.Equal(t, "sample.c", main.Source)

	hidden := tab.Lookup("hidden")
	require.NotNil(t, hidden)
	assert.Equal(t, symtab.Static, hidden.Storage)

	helper := tab.Lookup("helper")
	require.NotNil(t, helper)

	assert.True(t, listHas(main, helper) || listHas(main, hidden))
}

func TestWalkSourceWiresCallEdges(t *testing.T) {
	t.Parallel()
	tab := symtab.NewTable()
	col := New()
	require.NoError(t, col.WalkSource(context.Background(), tab, "sample.c", true, []byte(sample)))

	main := tab.Lookup("main")
	helper := tab.Lookup("helper")
	hidden := tab.Lookup("hidden")
	require.NotNil(t, main)
	require.NotNil(t, helper)
	require.NotNil(t, hidden)

	assert.True(t, listHas(main, helper))
	assert.True(t, listHas(main, hidden))
}

func TestWalkSourceInstallsForwardCallPlaceholder(t *testing.T) {
	t.Parallel()
	tab := symtab.NewTable()
	col := New()
	src := `
int a(void) {
    return b();
}

int b(void) {
    return 1;
}
`
	require.NoError(t, col.WalkSource(context.Background(), tab, "fwd.c", true, []byte(src)))

	b := tab.Lookup("b")
	require.NotNil(t, b)
	assert.Equal(t, symtab.Identifier, b.Type)
	assert.Equal(t, "fwd.c", b.Source)
	assert.Equal(t, 6, b.DefLine)
}

func TestWalkSourceParamsDoNotLeakPastFunctionScope(t *testing.T) {
	t.Parallel()
	tab := symtab.NewTable()
	col := New()
	require.NoError(t, col.WalkSource(context.Background(), tab, "sample.c", true, []byte(sample)))

	x := tab.Lookup("x")
	assert.Nil(t, x, "helper's parameter x should be popped at function end")
}

func listHas(sym *symtab.Symbol, target *symtab.Symbol) bool {
	if sym == nil {
		return false
	}
	found := false
	sym.Callee.Each(func(s *symtab.Symbol) bool {
		if s == target {
			found = true
			return false
		}
		return true
	})
	return found
}
