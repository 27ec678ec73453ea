// Package symtab implements the global symbol table: a hashed mapping
// from name to symbol record, with shadowing via a per-name chain so
// nested scopes can push and pop bindings without losing outer ones.
package symtab

import "github.com/jward/callgraph/internal/arena"

// SymType is the kind of entity a Symbol denotes.
type SymType int

const (
	// Undefined marks a symbol whose content has been logically deleted;
	// its slot is reclaimed on the next promote-or-overwrite.
	Undefined SymType = iota
	// Token is a type alias.
	Token
	// Identifier is a function or variable.
	Identifier
)

func (t SymType) String() string {
	switch t {
	case Token:
		return "token"
	case Identifier:
		return "identifier"
	default:
		return "undefined"
	}
}

// Flag is a per-symbol disposition independent of its Type.
type Flag int

const (
	// None is the default, no special disposition.
	None Flag = iota
	// Temp marks a symbol installed while a non-canonical (included)
	// file was current; it is purged at end of translation unit.
	Temp
	// Parm marks a function parameter awaiting demotion to an auto via
	// MoveParms, or removal via DeleteParms.
	Parm
)

// Storage is the C storage class of an Identifier symbol.
type Storage int

const (
	Extern Storage = iota
	ExplicitExtern
	Static
	Auto
	Any
)

// RefSite is a single reference to a symbol: the file and line it was
// referenced from.
type RefSite struct {
	Source string
	Line   int
}

// Symbol is an entry in the global symbol table.
//
// active is intentionally split into two fields rather than the single
// overloaded field the distilled spec describes (see SPEC_FULL.md §9
// Design Notes, which recommends exactly this split): dfsActive is the
// boolean recursion-scan marker (§4.3), expandLine is the tree writer's
// "output line of first expansion" marker (§4.7), used as both a
// data payload and, via its zero-ness, a within-path cycle guard.
type Symbol struct {
	Name    string
	Type    SymType
	Flag    Flag
	Storage Storage

	Source  string
	DefLine int
	Decl    string

	Level int
	Arity int

	Refs   arena.List[RefSite]
	Caller arena.List[*Symbol]
	Callee arena.List[*Symbol]

	Recursive bool

	dfsActive  bool
	expandLine int

	// Next is the shadow-chain link: the outer binding of the same
	// name that this one displaces from visibility. The head of the
	// chain (stored directly in the Table) is the currently visible
	// binding.
	Next *Symbol
}

// DFSActive reports whether the symbol is currently on the active path
// of a recursion scan (§4.3).
func (s *Symbol) DFSActive() bool { return s.dfsActive }

// SetDFSActive sets or clears the recursion-scan marker. Exported for
// the graph package's DFS; not meant for parser collaborators.
func (s *Symbol) SetDFSActive(v bool) { s.dfsActive = v }

// ExpandLine returns the output line at which the tree writer first
// expanded this symbol along the current root-to-leaf path, or 0 if it
// has not been expanded on the current path.
func (s *Symbol) ExpandLine() int { return s.expandLine }

// SetExpandLine sets or clears (via 0) the tree writer's within-path
// cycle guard and "see line N" payload. Exported for the tree writer.
func (s *Symbol) SetExpandLine(line int) { s.expandLine = line }
