package callgraph

import (
	"fmt"
	"os"

	"github.com/jward/callgraph/internal/driver"
)

// Options bundles the §6 CLI-level surface: everything the core
// observes about how to render one run's output.
type Options struct {
	// Path is the output destination; "-" or "" means standard output.
	Path string

	Xref bool
	Tree bool

	Reverse   bool
	StartName string
	MaxDepth  int

	PrintLevels      bool
	PrintLineNumbers bool

	// Include overrides the default inclusion predicate for both
	// writers. Compose with And, GlobalsOnly, Brief, OmitNames.
	Include Filter

	// DriverName selects a driver from Registry (or the default
	// registry, if Registry is nil). Defaults to "plain".
	DriverName string
	Registry   *Registry
}

// Output is the §4.8 entry point: opens the sink, initializes the
// level-mark buffer, dispatches to the cross-reference and/or tree
// writer per opts, and closes the sink on completion.
func Output(g *Graph, opts Options) error {
	w, closeSink, err := openSink(opts.Path)
	if err != nil {
		return err
	}
	defer closeSink()

	marks := driver.NewLevelMark()
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry(DriverOptions{
			PrintLevels:      opts.PrintLevels,
			PrintLineNumbers: opts.PrintLineNumbers,
			Marks:            marks,
		})
	}
	driverName := opts.DriverName
	if driverName == "" {
		driverName = "plain"
	}
	if err := registry.Select(driverName); err != nil {
		return fmt.Errorf("callgraph: %w", err)
	}
	handler := registry.Selected()

	if _, err := handler(driver.Init, &driver.Context{Out: w}); err != nil {
		return fmt.Errorf("callgraph: init: %w", err)
	}

	if opts.Xref {
		xw := NewXrefWriter()
		if opts.Include != nil {
			xw.Include = opts.Include
		}
		if err := xw.Write(w, g.Table()); err != nil {
			return err
		}
	}

	if opts.Tree {
		if _, err := handler(driver.Begin, &driver.Context{Out: w}); err != nil {
			return fmt.Errorf("callgraph: begin: %w", err)
		}

		tw := NewTreeWriter()
		tw.Reverse = opts.Reverse
		tw.StartName = opts.StartName
		tw.MaxDepth = opts.MaxDepth
		if opts.Include != nil {
			tw.Include = opts.Include
		}
		if err := tw.Write(w, g, marks, handler); err != nil {
			return err
		}

		if _, err := handler(driver.End, &driver.Context{Out: w}); err != nil {
			return fmt.Errorf("callgraph: end: %w", err)
		}
	}

	return nil
}

// openSink opens the output path, treating "" and "-" as standard
// output (§4.8, §7 IoOpen).
func openSink(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("callgraph: opening %s: %w", path, err)
	}
	return f, f.Close, nil
}
