package callgraph

import (
	"github.com/jward/callgraph/internal/graph"
	"github.com/jward/callgraph/internal/symtab"
)

// Graph bundles a symbol table with the call-graph operations that
// parser collaborators drive through the §6 event contract. It is the
// single piece of process state a caller needs to thread through a
// translation unit's analysis.
type Graph struct {
	table *symtab.Table
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{table: symtab.NewTable()}
}

// Table returns the underlying symbol table, for parser collaborators
// that speak the symtab.Table API directly (InstallFile, Install,
// Lookup, AddReference, scope-boundary methods).
func (g *Graph) Table() *symtab.Table {
	return g.table
}

// AddCall records a call edge from caller to callee, reciprocally and
// de-duplicated per caller (§4.3, §6).
func (g *Graph) AddCall(caller, callee *Symbol) {
	graph.AddCall(g.table, caller, callee)
}

// ScanRecursion runs the §4.3 recursion DFS over every symbol with a
// non-empty callee list, marking Symbol.Recursive in place. Output's
// tree writer calls this automatically before rendering; exported so
// callers inspecting the graph directly (without going through Output)
// can run it too.
func (g *Graph) ScanRecursion() {
	graph.ScanRecursion(g.table)
}
