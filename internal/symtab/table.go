package symtab

import "github.com/jward/callgraph/internal/arena"

// Table is the global symbol table: one hash bucket per name, each
// bucket holding the head of a shadow chain (Symbol.Next links each
// binding to the outer one it shadows). Not thread-safe, matching the core's single-threaded
// concurrency model (§5).
type Table struct {
	buckets map[string]*Symbol

	refArena  *arena.Arena[RefSite]
	edgeArena *arena.Arena[*Symbol]

	currentFile   string
	canonicalFile string
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		buckets:   make(map[string]*Symbol),
		refArena:  arena.New[RefSite](0),
		edgeArena: arena.New[*Symbol](0),
	}
}

// RefArena returns the arena backing every Symbol.Refs list.
func (t *Table) RefArena() *arena.Arena[RefSite] { return t.refArena }

// EdgeArena returns the arena backing every Symbol.Caller/Callee list.
func (t *Table) EdgeArena() *arena.Arena[*Symbol] { return t.edgeArena }

// InstallFile declares the current input file. Once a canonical root
// has been declared (isCanonical == true), symbols installed while the
// current file differs from that root receive the Temp flag on
// Install. Before any canonical root is declared, no symbol is flagged.
func (t *Table) InstallFile(path string, isCanonical bool) {
	t.currentFile = path
	if isCanonical {
		t.canonicalFile = path
	}
}

// Lookup returns the current visible binding for name, or nil. A
// binding that has been logically deleted (Undefined) is not visible.
func (t *Table) Lookup(name string) *Symbol {
	s := t.buckets[name]
	if s == nil || s.Type == Undefined {
		return nil
	}
	return s
}

// Install creates a fresh Undefined record for name. If name is new, it
// is inserted directly. If a binding already exists and it is
// Undefined, the new record overwrites it in place (reclaiming the
// slot); otherwise the new record is pushed as the visible binding and
// the previous visible record becomes its shadow via Next.
func (t *Table) Install(name string) *Symbol {
	temp := t.canonicalFile != "" && t.currentFile != t.canonicalFile

	head, exists := t.buckets[name]
	if !exists {
		sym := &Symbol{Name: name, Type: Undefined}
		if temp {
			sym.Flag = Temp
		}
		t.buckets[name] = sym
		return sym
	}

	if head.Type == Undefined {
		next := head.Next
		*head = Symbol{Name: name, Type: Undefined}
		if temp {
			head.Flag = Temp
		}
		head.Next = next
		return head
	}

	sym := &Symbol{Name: name, Type: Undefined, Next: head}
	if temp {
		sym.Flag = Temp
	}
	t.buckets[name] = sym
	return sym
}

// delete removes the binding s from visibility: if s has a shadowed
// binding, that binding is promoted into s's storage (popping the
// stack by one); otherwise s is marked Undefined in place. This works
// whether s is the chain head or not, because it splices by copying
// content rather than rewriting a predecessor's Next pointer — the same
// trick symbol.c's delete_symbol relies on.
func deleteSymbol(s *Symbol) {
	if s.Next != nil {
		*s = *s.Next
		return
	}
	s.Type = Undefined
}

// Delete is the exported form of the delete primitive, usable directly
// by a parser collaborator per §6.
func (t *Table) Delete(s *Symbol) { deleteSymbol(s) }

// DeleteAutos removes every Identifier with Auto storage at the given
// block-nesting level. Only chain heads are examined — matching
// symbol.c's auto_processor, which gnulib's hash_do_for_each invokes
// once per table entry without walking Next itself.
func (t *Table) DeleteAutos(level int) {
	for _, head := range t.buckets {
		if head.Type == Identifier && head.Storage == Auto && head.Level == level {
			deleteSymbol(head)
		}
	}
}

// DeleteParms removes every parameter-flagged Identifier whose Level is
// strictly greater than level.
func (t *Table) DeleteParms(level int) {
	for _, head := range t.buckets {
		if head.Type == Identifier && head.Storage == Auto && head.Flag == Parm && head.Level > level {
			deleteSymbol(head)
		}
	}
}

// MoveParms reclassifies parameter-flagged Identifiers as ordinary
// autos at the given level, clearing the Parm flag.
func (t *Table) MoveParms(level int) {
	for _, head := range t.buckets {
		if head.Type == Identifier && head.Storage == Auto && head.Flag == Parm {
			head.Level = level
			head.Flag = None
		}
	}
}

// DeleteStatics purges all Static Identifiers when globalsOnly is set,
// and always purges Temp-flagged symbols. install() uses LIFO per-chain
// ordering, so the deepest static in any chain is the current file's —
// no per-symbol source check is needed.
func (t *Table) DeleteStatics(globalsOnly bool) {
	for _, head := range t.buckets {
		if globalsOnly && head.Type == Identifier && head.Storage == Static {
			deleteSymbol(head)
		}
	}
	for _, head := range t.buckets {
		if head.Flag == Temp {
			deleteSymbol(head)
		}
	}
}

// Cleanup finalizes the table for traversal. The original finalizes
// each symbol's lists by unwrapping a root-cons sentinel; this
// implementation's List already has an explicit head/tail pair with no
// such sentinel, so Cleanup has nothing to unwrap. It is kept as an
// explicit, idempotent step (P9) both to mirror the §6 event contract
// and as the natural extension point if a future list representation
// ever needs one.
func (t *Table) Cleanup() {}

// AddReference appends {source, line} to sym's reference list.
func (t *Table) AddReference(sym *Symbol, source string, line int) {
	t.refArena.Append(&sym.Refs, RefSite{Source: source, Line: line})
}

// Each calls fn once per chain head in the table (i.e. once per
// distinct name), in unspecified order. Downstream passes that need a
// deterministic order sort explicitly by name (§4.2 Tie-breaks).
func (t *Table) Each(fn func(*Symbol)) {
	for _, head := range t.buckets {
		fn(head)
	}
}

// EachInChain calls fn once for every binding reachable from name's
// chain head, from the visible (innermost) binding to the outermost
// shadowed one, i.e. head first, then head.Next, and so on. Used by symbol collection passes
// (xref, tree) which — like collect_symbols in the source material —
// consider every shadow-chain position, not just the visible binding.
func (t *Table) EachInChain(fn func(sym *Symbol, depth int)) {
	for _, head := range t.buckets {
		depth := 0
		for s := head; s != nil; s = s.Next {
			fn(s, depth)
			depth++
		}
	}
}
