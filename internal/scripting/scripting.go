// Package scripting adapts a Risor script to the output driver contract
// (§4.4's "selection by name" extension point plus SPEC_FULL.md §C's
// scriptable driver), evaluating the script once per event with the
// event bound as globals and two host functions, write and suppress,
// the script uses to produce output.
//
// Grounded on internal/runtime/runtime.go's eval/buildGlobals shape:
// one risor.Eval call per invocation, with every value crossing into
// the script wrapped through an explicit object.New* constructor
// rather than handed to risor.WithGlobal raw.
package scripting

import (
	"context"
	"fmt"
	"os"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"

	"github.com/jward/callgraph/internal/driver"
)

// Driver evaluates a Risor script once for every output event.
type Driver struct {
	source string
	label  string
}

// New wraps Risor source held in memory (label is used in error
// messages only).
func New(source, label string) *Driver {
	return &Driver{source: source, label: label}
}

// Load reads a Risor script from disk.
func Load(path string) (*Driver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: loading %s: %w", path, err)
	}
	return New(string(data), path), nil
}

// Handler returns a driver.Handler backed by d. Every command the
// driver contract sends triggers one full evaluation of the script;
// the script reads the "command" global to decide what to do and
// calls write(s) to emit text, suppress() to suppress descent into
// the current symbol's subtree.
func (d *Driver) Handler() driver.Handler {
	return func(cmd driver.Command, ctx *driver.Context) (bool, error) {
		var out []byte
		suppressed := false

		writeFn := object.NewBuiltin("write", func(_ context.Context, args ...object.Object) object.Object {
			for _, a := range args {
				s, ok := a.(*object.String)
				if !ok {
					return object.Errorf("write: expected string, got %s", a.Type())
				}
				out = append(out, s.Value()...)
			}
			return object.Nil
		})
		suppressFn := object.NewBuiltin("suppress", func(_ context.Context, _ ...object.Object) object.Object {
			suppressed = true
			return object.Nil
		})

		opts := []risor.Option{
			risor.WithGlobal("write", writeFn),
			risor.WithGlobal("suppress", suppressFn),
			risor.WithGlobal("command", object.NewString(cmd.String())),
			risor.WithGlobal("out_line", object.NewInt(int64(ctx.Line))),
			risor.WithGlobal("text", object.NewString(ctx.Text)),
		}
		opts = append(opts, symbolGlobals(ctx)...)

		if _, err := risor.Eval(context.Background(), d.source, opts...); err != nil {
			return false, fmt.Errorf("scripting: %s: %w", d.label, err)
		}

		if len(out) > 0 {
			if _, err := ctx.Out.Write(out); err != nil {
				return false, fmt.Errorf("scripting: %s: writing output: %w", d.label, err)
			}
		}
		return suppressed, nil
	}
}

// symbolGlobals exposes the fields of ctx.Sym, or zero values when the
// current command is not Symbol.
func symbolGlobals(ctx *driver.Context) []risor.Option {
	if ctx.Sym == nil {
		return []risor.Option{
			risor.WithGlobal("direct", object.NewBool(true)),
			risor.WithGlobal("level", object.NewInt(0)),
			risor.WithGlobal("last", object.NewBool(false)),
			risor.WithGlobal("has_children", object.NewBool(false)),
			risor.WithGlobal("name", object.NewString("")),
			risor.WithGlobal("source", object.NewString("")),
			risor.WithGlobal("def_line", object.NewInt(0)),
		}
	}
	ev := ctx.Sym
	return []risor.Option{
		risor.WithGlobal("direct", object.NewBool(ev.Direct)),
		risor.WithGlobal("level", object.NewInt(int64(ev.Level))),
		risor.WithGlobal("last", object.NewBool(ev.Last)),
		risor.WithGlobal("has_children", object.NewBool(ev.HasChildren)),
		risor.WithGlobal("name", object.NewString(ev.Sym.Name)),
		risor.WithGlobal("source", object.NewString(ev.Sym.Source)),
		risor.WithGlobal("def_line", object.NewInt(int64(ev.Sym.DefLine))),
	}
}
