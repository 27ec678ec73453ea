package callgraph

// Filter is the inclusion predicate (§4.6, §4.7's "include_symbol")
// that both writers consult before considering a symbol printable.
type Filter func(sym *Symbol) bool

// And composes filters, accepting a symbol only when every fn accepts
// it. With no filters, every symbol is accepted.
func And(fns ...Filter) Filter {
	return func(sym *Symbol) bool {
		for _, fn := range fns {
			if !fn(sym) {
				return false
			}
		}
		return true
	}
}

// DefaultInclude is the baseline predicate spec §4.6 describes: a
// Token, or an Identifier whose storage is Extern or Static. Undefined
// symbols (and, implicitly, Auto/Parm-scoped locals that slipped past
// a scope pop) are excluded.
func DefaultInclude(sym *Symbol) bool {
	switch sym.Type {
	case Token:
		return true
	case Identifier:
		return sym.Storage == Extern || sym.Storage == ExplicitExtern || sym.Storage == Static
	default:
		return false
	}
}

// GlobalsOnly accepts only symbols with external linkage (Extern or
// ExplicitExtern storage), dropping file-static functions from the
// output.
func GlobalsOnly(sym *Symbol) bool {
	if sym.Type != Identifier {
		return true
	}
	return sym.Storage == Extern || sym.Storage == ExplicitExtern
}

// Brief accepts a symbol referenced from more than one source file, or
// with external linkage — the supplemented "brief mode" from
// SPEC_FULL.md §D.1, which hides symbols without external linkage that
// are referenced from only one source file, however many times.
func Brief(sym *Symbol) bool {
	if sym.Storage == Extern || sym.Storage == ExplicitExtern {
		return true
	}
	return countSourceFiles(sym) > 1
}

// countSourceFiles returns the number of distinct source files sym is
// referenced from, per sym.Refs.
func countSourceFiles(sym *Symbol) int {
	seen := make(map[string]bool)
	sym.Refs.Each(func(r RefSite) bool {
		seen[r.Source] = true
		return true
	})
	return len(seen)
}

// OmitNames returns a Filter rejecting any symbol whose name appears in
// names, the supplemented per-symbol exclusion list from SPEC_FULL.md
// §D (the CLI's --omit flag).
func OmitNames(names []string) Filter {
	omit := make(map[string]bool, len(names))
	for _, n := range names {
		omit[n] = true
	}
	return func(sym *Symbol) bool {
		return !omit[sym.Name]
	}
}
