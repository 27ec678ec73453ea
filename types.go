package callgraph

import "github.com/jward/callgraph/internal/symtab"

// Public aliases for internal symbol-table types used across the
// package's exported API. These are Go type aliases — identical to the
// internal types at compile time, so external callers never need a
// conversion.
type (
	Symbol  = symtab.Symbol
	RefSite = symtab.RefSite
	SymType = symtab.SymType
	Flag    = symtab.Flag
	Storage = symtab.Storage
)

// Re-exported symbol classification constants (§3 Data model).
const (
	Undefined  = symtab.Undefined
	Token      = symtab.Token
	Identifier = symtab.Identifier
)

const (
	NoFlag = symtab.None
	Temp   = symtab.Temp
	Parm   = symtab.Parm
)

const (
	Extern         = symtab.Extern
	ExplicitExtern = symtab.ExplicitExtern
	Static         = symtab.Static
	Auto           = symtab.Auto
	AnyStorage     = symtab.Any
)
