// Package driver implements the pluggable output driver registry
// (§4.4): a fixed-capacity, name-keyed set of handlers reacting to the
// semantic output events the tree writer emits (the cross-reference
// writer writes its lines directly).
package driver

import (
	"fmt"
	"io"

	"github.com/jward/callgraph/internal/symtab"
)

// Command identifies one output event in the driver contract (§6).
type Command int

const (
	// Init is sent once before any output.
	Init Command = iota
	// Begin is sent before the tree phase.
	Begin
	// End is sent after the tree phase.
	End
	// Newline forces a line break; the caller increments the line
	// counter itself (see Context.Line).
	Newline
	// Separator is sent between top-level tree roots.
	Separator
	// Symbol renders one symbol at a given (direct, level, last).
	Symbol
	// Text emits literal text, for composite drivers.
	Text
)

func (c Command) String() string {
	switch c {
	case Init:
		return "init"
	case Begin:
		return "begin"
	case End:
		return "end"
	case Newline:
		return "newline"
	case Separator:
		return "separator"
	case Symbol:
		return "symbol"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// SymbolEvent carries the data a Symbol command needs to render one
// node of a call tree.
type SymbolEvent struct {
	Direct bool // true for direct-mode (callee) trees, false for inverted
	Level  int
	Last   bool // no later sibling at this depth will be rendered
	Sym    *symtab.Symbol

	// HasChildren reports whether at least one printable child exists
	// below this node under the active inclusion predicate. The driver
	// contract (§6) doesn't name this field, but spec §8 scenario S1's
	// literal expected output ("main() <main.c:1>:" vs. the childless
	// "b() <main.c:5>" with no trailing colon) is only reproducible if
	// the driver knows whether a node is about to be expanded further;
	// the tree writer already computes this during its look-ahead pass
	// for Last, so it is threaded through here at no extra cost.
	HasChildren bool
}

// Context is passed to every Handler call. Line is the current output
// line counter (out_line in the source material), incremented by the
// caller after each Newline command has been handled.
type Context struct {
	Out  io.Writer
	Line int
	Text string       // valid for the Text command
	Sym  *SymbolEvent // valid for the Symbol command
}

// Handler is an output driver: a function reacting to one Command at a
// time. For the Symbol command, a true return suppresses descent into
// that symbol's subtree (the "short-form" policy — print a symbol's
// expansion only once, then back-reference it on later encounters).
// The return value is ignored for every other command.
type Handler func(cmd Command, ctx *Context) (suppressDescent bool, err error)

// MaxDrivers is the registry's fixed capacity, taken directly from GNU
// cflow's MAX_OUTPUT_DRIVERS.
const MaxDrivers = 8

// ErrNotFound is returned by Select when no driver is registered under
// the given name.
var ErrNotFound = fmt.Errorf("driver: not found")

type entry struct {
	name    string
	handler Handler
}

// Registry is a fixed-capacity, named set of output drivers, exactly
// the shape of GNU cflow's output_driver[MAX_OUTPUT_DRIVERS] table.
type Registry struct {
	entries  []entry
	selected int // index into entries, or -1
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{selected: -1}
}

// Register adds a named handler and returns its index. Registering
// past capacity is a programmer error — abort the process, matching
// the source material's abort() on driver_max == MAX_OUTPUT_DRIVERS-1.
func (r *Registry) Register(name string, h Handler) int {
	if len(r.entries) >= MaxDrivers {
		panic("driver: CapacityExceeded: registry is full")
	}
	r.entries = append(r.entries, entry{name: name, handler: h})
	return len(r.entries) - 1
}

// Select makes the named driver the active one. Returns ErrNotFound if
// no driver is registered under that name; the selection is left
// unchanged in that case.
func (r *Registry) Select(name string) error {
	for i, e := range r.entries {
		if e.name == name {
			r.selected = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Selected returns the active handler. Panics if nothing has been
// selected yet — a caller bug, since Output always selects a driver
// before emitting any event (§4.8).
func (r *Registry) Selected() Handler {
	if r.selected < 0 {
		panic("driver: no driver selected")
	}
	return r.entries[r.selected].handler
}

// HasSelection reports whether a driver is currently selected.
func (r *Registry) HasSelection() bool {
	return r.selected >= 0
}
