package graph

import "github.com/jward/callgraph/internal/symtab"

// ScanRecursion runs the §4.3 recursion scan over every symbol in tab
// that has a non-empty callee list, marking sym.Recursive wherever a
// node is reached while already active on the current DFS path. Walks
// the full shadow chain (tab.EachInChain), not just chain heads, so a
// shadowed same-named symbol with its own callee subgraph — reachable
// as a root via the same full-chain collection xref.go and tree.go
// use — still gets scanned.
//
// Implemented with an explicit stack rather than native recursion,
// per §4.3's "implementations may convert this to an explicit stack to
// avoid native-stack overflow on pathological inputs" — the same
// trade the teacher repository makes in query_graph.go, which walks
// the call graph with an explicit BFS queue instead of recursing.
func ScanRecursion(tab *symtab.Table) {
	tab.EachInChain(func(sym *symtab.Symbol, depth int) {
		if sym.Callee.Len() > 0 {
			scanFrom(sym)
		}
	})
}

type frame struct {
	sym     *symtab.Symbol
	callees []*symtab.Symbol
	idx     int
}

// scanFrom runs one DFS rooted at root. enter marks a node active (and
// records it as recursive, without descending, if it was already
// active); the stack drives the traversal so arbitrarily deep call
// chains never grow the Go call stack.
func scanFrom(root *symtab.Symbol) {
	var stack []frame

	enter := func(sym *symtab.Symbol) bool {
		if sym.DFSActive() {
			sym.Recursive = true
			return false
		}
		sym.SetDFSActive(true)
		stack = append(stack, frame{sym: sym, callees: sym.Callee.Slice()})
		return true
	}

	if !enter(root) {
		return
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.idx < len(top.callees) {
			next := top.callees[top.idx]
			top.idx++
			enter(next)
			continue
		}
		top.sym.SetDFSActive(false)
		stack = stack[:len(stack)-1]
	}
}
