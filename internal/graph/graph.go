// Package graph builds and analyzes the call graph: symmetric
// caller/callee edges recorded as the parser collaborator reports
// calls, and post-pass recursion detection over the callee edges.
package graph

import (
	"github.com/jward/callgraph/internal/arena"
	"github.com/jward/callgraph/internal/symtab"
)

func samePointer(a, b *symtab.Symbol) bool { return a == b }

// AddCall appends callee to caller's callee list and caller to callee's
// caller list — the edges are always added pairwise (§3 invariant I5).
// A call already present in caller's callee list is not re-added, on
// either side; §4.7's Ordering note calls the result "de-duplicated per
// parent" without qualifying "consecutive", so the check here is full
// membership, not just a check against the most recent entry — the Go
// equivalent of symbol_in_list.
func AddCall(edges *symtab.Table, caller, callee *symtab.Symbol) {
	if arena.Contains(&caller.Callee, callee, samePointer) {
		return
	}
	edges.EdgeArena().Append(&caller.Callee, callee)
	edges.EdgeArena().Append(&callee.Caller, caller)
}
