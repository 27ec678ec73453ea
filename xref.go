package callgraph

import (
	"fmt"
	"io"
	"sort"

	"github.com/jward/callgraph/internal/symtab"
)

// XrefWriter implements the §4.6 cross-reference writer: one
// definition line per defined symbol, followed by one reference line
// per recorded use (also for symbols with no definition), writing directly (it does not go through the
// driver registry — neither does the source material's print_refs).
type XrefWriter struct {
	Include Filter
}

// NewXrefWriter creates an XrefWriter with the default inclusion
// predicate (§4.6).
func NewXrefWriter() *XrefWriter {
	return &XrefWriter{Include: DefaultInclude}
}

// Write collects every symbol (across all shadow-chain positions —
// §4.6 doesn't distinguish visible bindings from shadowed ones) that
// satisfies the inclusion predicate, sorts by name (P5), and emits its
// definition and reference lines to w.
func (x *XrefWriter) Write(w io.Writer, tab *symtab.Table) error {
	include := x.Include
	if include == nil {
		include = DefaultInclude
	}

	var syms []*Symbol
	tab.EachInChain(func(sym *Symbol, depth int) {
		if include(sym) {
			syms = append(syms, sym)
		}
	})
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })

	for _, sym := range syms {
		if err := writeXrefEntry(w, sym); err != nil {
			return err
		}
	}
	return nil
}

func writeXrefEntry(w io.Writer, sym *Symbol) error {
	switch sym.Type {
	case Identifier:
		if sym.Source != "" {
			if _, err := fmt.Fprintf(w, "%s * %s:%d %s\n", sym.Name, sym.Source, sym.DefLine, sym.Decl); err != nil {
				return fmt.Errorf("xref: write definition for %s: %w", sym.Name, err)
			}
		}
		var writeErr error
		sym.Refs.Each(func(ref RefSite) bool {
			if _, err := fmt.Fprintf(w, "%s   %s:%d\n", sym.Name, ref.Source, ref.Line); err != nil {
				writeErr = fmt.Errorf("xref: write reference for %s: %w", sym.Name, err)
				return false
			}
			return true
		})
		return writeErr
	case Token:
		if sym.Source == "" {
			return nil
		}
		if _, err := fmt.Fprintf(w, "%s t %s:%d\n", sym.Name, sym.Source, sym.DefLine); err != nil {
			return fmt.Errorf("xref: write token %s: %w", sym.Name, err)
		}
		return nil
	default:
		return nil
	}
}
