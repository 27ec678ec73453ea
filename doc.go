// Package callgraph builds and renders static call graphs for C
// translation units: a symbol table with scope-aware shadowing, a call
// graph with recursion detection, and cross-reference/tree output
// writers behind a pluggable driver registry.
//
// # Pipeline
//
// A parser collaborator (internal/cparse provides one backed by
// tree-sitter) drives a [Graph] through the symbol table and call-graph
// events as it walks a translation unit: InstallFile, Install,
// field setters, AddReference, AddCall, and the scope-boundary signals
// (DeleteAutos, DeleteParms, MoveParms, DeleteStatics, Cleanup). Once
// parsing finishes, [Output] renders the result:
//
//	g := callgraph.NewGraph()
//	col := cparse.New()
//	if err := col.Walk(ctx, g.Table(), "main.c", true); err != nil { ... }
//
//	opts := callgraph.Options{
//	    Path: "-",
//	    Tree: true,
//	    StartName: "main",
//	}
//	err := callgraph.Output(g, opts)
//
// # Output
//
// [Output] opens the configured sink (a filesystem path, or "-" for
// standard output), then dispatches to the cross-reference writer, the
// tree writer, or both depending on [Options.Xref] and [Options.Tree].
// Tree rendering goes through a [driver.Registry] of named output drivers;
// the built-in "plain", "gnu", and "posix" drivers are registered by
// default, and a script-backed driver (internal/scripting) or a custom
// [driver.Handler] can be selected in their place via
// [Options.DriverName] and [Options.Registry].
//
// # Filtering
//
// [Filter] composes the inclusion predicate referenced throughout §4 of
// the design: globals-only, brief mode, and an omit-list all narrow
// which symbols the writers consider.
package callgraph
