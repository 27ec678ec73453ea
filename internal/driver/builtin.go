package driver

import (
	"fmt"
	"io"
	"strings"
)

// barIndent mirrors GNU cflow's level_indent[mark] table: the string
// printed for each ancestor depth, selected by that depth's level mark
// (1 = draw a continuation bar, 0 = draw blank).
var barIndent = [2]string{
	0: "    ",
	1: "|   ",
}

// Options configures the built-in drivers.
type Options struct {
	PrintLevels      bool // prefix each symbol line with "{lev} "
	PrintLineNumbers bool // prefix each symbol line with the output line
	Marks            *LevelMark
}

// NewPlain returns the built-in default driver (§6: "print_levels,
// print_line_numbers booleans for the built-in default driver"): flat
// 4-space-per-level indentation, a trailing ':' on any symbol line that
// has at least one printable child. This is the driver spec §8's
// literal scenarios S1-S4 are written against.
func NewPlain(opts Options) Handler {
	return func(cmd Command, ctx *Context) (bool, error) {
		switch cmd {
		case Init, Begin, End:
			return false, nil
		case Separator:
			fmt.Fprintln(ctx.Out)
			return false, nil
		case Newline:
			fmt.Fprintln(ctx.Out)
			return false, nil
		case Text:
			fmt.Fprint(ctx.Out, ctx.Text)
			return false, nil
		case Symbol:
			printLinePrefix(ctx.Out, opts, ctx.Sym.Level, ctx.Line)
			fmt.Fprint(ctx.Out, strings.Repeat("    ", ctx.Sym.Level))
			printSymbolLine(ctx.Out, ctx.Sym)
			return false, nil
		default:
			return false, fmt.Errorf("driver: plain: unknown command %v", cmd)
		}
	}
}

// NewGNU returns the "gnu" built-in driver: like Plain, but draws
// continuation bars between siblings using the level-mark buffer,
// named after GNU cflow's gnu_output_handler.
func NewGNU(opts Options) Handler {
	if opts.Marks == nil {
		opts.Marks = NewLevelMark()
	}
	return func(cmd Command, ctx *Context) (bool, error) {
		switch cmd {
		case Init, Begin, End:
			return false, nil
		case Separator, Newline:
			fmt.Fprintln(ctx.Out)
			return false, nil
		case Text:
			fmt.Fprint(ctx.Out, ctx.Text)
			return false, nil
		case Symbol:
			printLinePrefix(ctx.Out, opts, ctx.Sym.Level, ctx.Line)
			for i := 0; i < ctx.Sym.Level; i++ {
				fmt.Fprint(ctx.Out, barIndent[opts.Marks.At(i)])
			}
			printSymbolLine(ctx.Out, ctx.Sym)
			return false, nil
		default:
			return false, fmt.Errorf("driver: gnu: unknown command %v", cmd)
		}
	}
}

// NewPOSIX returns the "posix" built-in driver: same line shape as
// Plain but never suppresses descent and omits the trailing colon,
// named after GNU cflow's posix_output_handler.
func NewPOSIX(opts Options) Handler {
	return func(cmd Command, ctx *Context) (bool, error) {
		switch cmd {
		case Init, Begin, End, Separator:
			return false, nil
		case Newline:
			fmt.Fprintln(ctx.Out)
			return false, nil
		case Text:
			fmt.Fprint(ctx.Out, ctx.Text)
			return false, nil
		case Symbol:
			printLinePrefix(ctx.Out, opts, ctx.Sym.Level, ctx.Line)
			fmt.Fprint(ctx.Out, strings.Repeat("    ", ctx.Sym.Level))
			fmt.Fprintf(ctx.Out, "%s()%s", ctx.Sym.Sym.Name, location(ctx.Sym))
			return false, nil
		default:
			return false, fmt.Errorf("driver: posix: unknown command %v", cmd)
		}
	}
}

func printLinePrefix(w io.Writer, opts Options, level, line int) {
	if opts.PrintLineNumbers {
		fmt.Fprintf(w, "%5d ", line)
	}
	if opts.PrintLevels {
		fmt.Fprintf(w, "{%4d} ", level)
	}
}

// printSymbolLine renders "name() <source:line>" (or omits the
// location entirely for a symbol with no recorded definition), with a
// trailing ':' when the node has at least one printable child.
func printSymbolLine(w io.Writer, ev *SymbolEvent) {
	suffix := ""
	if ev.HasChildren {
		suffix = ":"
	}
	fmt.Fprintf(w, "%s()%s%s", ev.Sym.Name, location(ev), suffix)
}

func location(ev *SymbolEvent) string {
	if ev.Sym.Source == "" {
		return ""
	}
	return fmt.Sprintf(" <%s:%d>", ev.Sym.Source, ev.Sym.DefLine)
}
