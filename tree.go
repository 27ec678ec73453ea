package callgraph

import (
	"fmt"
	"io"
	"sort"

	"github.com/jward/callgraph/internal/arena"
	"github.com/jward/callgraph/internal/driver"
	"github.com/jward/callgraph/internal/symtab"
)

// TreeWriter implements the §4.7 tree writer: direct mode walks callee
// edges from a chosen root (or every symbol with callees), inverted
// mode walks caller edges from every included symbol in turn.
type TreeWriter struct {
	Include   Filter
	Reverse   bool
	StartName string
	MaxDepth  int
}

// NewTreeWriter creates a TreeWriter with the default inclusion
// predicate and no depth limit.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{Include: DefaultInclude}
}

// Write runs the §4.3 recursion scan, selects roots per §4.7's rules,
// and renders each via handler, separating top-level roots with a
// Separator event — emitted after every root, including the last, per
// the source material's tree_output loop.
func (w *TreeWriter) Write(out io.Writer, g *Graph, marks *driver.LevelMark, handler Handler) error {
	g.ScanRecursion()

	include := w.Include
	if include == nil {
		include = DefaultInclude
	}

	rs := &renderState{
		out:      out,
		handler:  handler,
		marks:    marks,
		include:  include,
		maxDepth: w.MaxDepth,
		direct:   !w.Reverse,
	}

	roots := w.selectRoots(g.Table(), include)
	for _, root := range roots {
		if err := rs.visit(root, 0, false); err != nil {
			return err
		}
		if _, err := handler(driver.Separator, &driver.Context{Out: out, Line: rs.line}); err != nil {
			return fmt.Errorf("tree: separator: %w", err)
		}
	}
	return nil
}

// selectRoots implements §4.7's root-selection rule. Symbol collection
// walks the full shadow chain (every binding a name has ever had), not
// just currently visible heads — matching the source material's
// collect_symbols, which is also why a direct start_name lookup (which
// only sees the visible binding) can still land outside the sorted
// collected set.
func (w *TreeWriter) selectRoots(tab *symtab.Table, include Filter) []*Symbol {
	var all []*Symbol
	tab.EachInChain(func(sym *Symbol, depth int) {
		if include(sym) {
			all = append(all, sym)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if w.Reverse {
		return all
	}

	if w.StartName != "" {
		if s := tab.Lookup(w.StartName); s != nil {
			return []*Symbol{s}
		}
		return nil
	}

	// SPEC_FULL.md §D.4: with no start_name, prefer main as the sole
	// root when one exists, before falling through to the general
	// every-symbol-with-callees rule. Plain lookup, same as the
	// start_name case above — not filtered through include or the
	// sorted/collected set.
	if m := tab.Lookup("main"); m != nil {
		return []*Symbol{m}
	}

	var roots []*Symbol
	for _, s := range all {
		if s.Callee.Len() > 0 {
			roots = append(roots, s)
		}
	}
	return roots
}

// renderState carries the mutable line counter and per-run
// configuration through one tree's DFS.
type renderState struct {
	out      io.Writer
	handler  Handler
	marks    *driver.LevelMark
	include  Filter
	maxDepth int
	direct   bool
	line     int
}

func (rs *renderState) edgeList(sym *Symbol) *arena.List[*Symbol] {
	if rs.direct {
		return &sym.Callee
	}
	return &sym.Caller
}

// hasLaterPrintable reports whether any symbol in rest satisfies
// include — used for both the "last" flag (P8) and the level-mark
// continuation-bar flag (§4.5), per §4.7's literal wording ("any later
// sibling"), which is a correction over the source material's
// set_level_mark call (is_printable(CDR(cons))), which inspects only
// the immediate next cons instead of the whole remaining tail.
func hasLaterPrintable(rest []*Symbol, include Filter) bool {
	for _, s := range rest {
		if s.Type != symtab.Undefined && include(s) {
			return true
		}
	}
	return false
}

func (rs *renderState) hasPrintableChild(sym *Symbol, level int) bool {
	if rs.maxDepth > 0 && level+1 >= rs.maxDepth {
		return false
	}
	has := false
	rs.edgeList(sym).Each(func(c *Symbol) bool {
		if c.Type != symtab.Undefined && rs.include(c) {
			has = true
			return false
		}
		return true
	})
	return has
}

// visit implements one DFS step (§4.7 steps 1-7).
func (rs *renderState) visit(sym *Symbol, level int, last bool) error {
	if sym.Type == symtab.Undefined {
		return nil
	}
	if rs.maxDepth > 0 && level >= rs.maxDepth {
		return nil
	}
	if !rs.include(sym) {
		return nil
	}

	ev := &driver.SymbolEvent{
		Direct:      rs.direct,
		Level:       level,
		Last:        last,
		Sym:         sym,
		HasChildren: rs.hasPrintableChild(sym, level),
	}
	suppressed, err := rs.handler(driver.Symbol, &driver.Context{Out: rs.out, Line: rs.line, Sym: ev})
	if err != nil {
		return fmt.Errorf("tree: symbol %s: %w", sym.Name, err)
	}
	if _, err := rs.handler(driver.Newline, &driver.Context{Out: rs.out, Line: rs.line}); err != nil {
		return fmt.Errorf("tree: newline after %s: %w", sym.Name, err)
	}
	rs.line++

	wasActive := sym.ExpandLine() != 0
	if suppressed || wasActive {
		return nil
	}
	sym.SetExpandLine(rs.line)

	children := rs.edgeList(sym).Slice()
	for i, c := range children {
		rest := children[i+1:]
		rs.marks.Set(level+1, markByte(hasLaterPrintable(rest, rs.include)))
		if err := rs.visit(c, level+1, !hasLaterPrintable(rest, rs.include)); err != nil {
			return err
		}
	}
	sym.SetExpandLine(0)
	return nil
}

func markByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
