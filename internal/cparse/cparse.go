// Package cparse is a demonstration parser collaborator: it drives the
// symtab/graph core end to end against real C source using
// smacker/go-tree-sitter's C grammar, emitting the §6 parser→core
// event sequence (InstallFile, Install, field setters, AddReference,
// AddCall, scope-boundary signals) for function definitions, their
// parameters, and the direct calls in their bodies.
//
// It is not a C semantic analyzer. There is no macro expansion, no
// preprocessing, and no type inference (out of scope per spec.md §1);
// pointer-returning function definitions and calls through anything
// other than a bare identifier are not recognized. It exists to give
// the core something real to chew on for integration tests and the CLI.
package cparse

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/jward/callgraph/internal/graph"
	"github.com/jward/callgraph/internal/symtab"
)

var (
	funcDefQuery = mustQuery(`
(function_definition
  declarator: (function_declarator
    declarator: (identifier) @name
    parameters: (parameter_list) @params)
  body: (compound_statement) @body) @def
`)
	callQuery = mustQuery(`
(call_expression
  function: (identifier) @name) @call
`)
	paramQuery = mustQuery(`
(parameter_declaration
  declarator: (identifier) @pname)
`)
)

// mustQuery compiles a tree-sitter query against the C grammar once at
// package init. A bad query here is a programmer error in this package,
// not a runtime condition callers can recover from.
func mustQuery(src string) *sitter.Query {
	q, err := sitter.NewQuery([]byte(src), c.GetLanguage())
	if err != nil {
		panic(fmt.Sprintf("cparse: invalid built-in query: %v", err))
	}
	return q
}

// Collaborator parses C source and installs what it finds into a
// symtab.Table, wiring call edges as it goes.
type Collaborator struct{}

// New creates a Collaborator.
func New() *Collaborator { return &Collaborator{} }

// Walk reads and parses the file at path, driving tab through the
// event sequence for every function definition it contains. isCanonical
// is forwarded to tab.InstallFile (§4.2's "canonical input" concept).
func (c2 *Collaborator) Walk(ctx context.Context, tab *symtab.Table, path string, isCanonical bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cparse: reading %s: %w", path, err)
	}
	return c2.WalkSource(ctx, tab, path, isCanonical, src)
}

// WalkSource is Walk with source bytes already in memory, for tests.
func (c2 *Collaborator) WalkSource(ctx context.Context, tab *symtab.Table, source string, isCanonical bool, src []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(c.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("cparse: parsing %s: %w", source, err)
	}
	defer tree.Close()

	tab.InstallFile(source, isCanonical)

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(funcDefQuery, tree.RootNode())

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		if err := c2.installFunction(tab, source, src, match); err != nil {
			return err
		}
	}
	return nil
}

func (c2 *Collaborator) installFunction(tab *symtab.Table, source string, src []byte, match *sitter.QueryMatch) error {
	var name, params, body, def *sitter.Node
	for _, cap := range match.Captures {
		switch funcDefQuery.CaptureNameForId(cap.Index) {
		case "name":
			name = cap.Node
		case "params":
			params = cap.Node
		case "body":
			body = cap.Node
		case "def":
			def = cap.Node
		}
	}
	if name == nil || body == nil || def == nil {
		return nil
	}

	fnName := name.Content(src)
	line := int(name.StartPoint().Row) + 1

	// Fill in a placeholder left by an earlier forward call, so the
	// edges already recorded against it stay on the defined function.
	fn := tab.Lookup(fnName)
	if fn == nil || fn.Type != symtab.Identifier || fn.Source != "" {
		fn = tab.Install(fnName)
	}
	fn.Type = symtab.Identifier
	fn.Storage = storageOf(def, src)
	fn.Source = source
	fn.DefLine = line
	fn.Decl = strings.TrimSpace(string(src[def.StartByte():body.StartByte()]))
	fn.Level = 0

	if params != nil {
		installParams(tab, params, src)
	}
	tab.MoveParms(1)

	if err := c2.walkCalls(tab, fn, source, src, body); err != nil {
		return err
	}

	tab.DeleteAutos(1)
	return nil
}

// storageOf reports whether a function_definition node carries an
// explicit "static" storage-class specifier among its children.
func storageOf(def *sitter.Node, src []byte) symtab.Storage {
	for i := 0; i < int(def.ChildCount()); i++ {
		child := def.Child(i)
		if child.Type() == "storage_class_specifier" && strings.TrimSpace(child.Content(src)) == "static" {
			return symtab.Static
		}
	}
	return symtab.Extern
}

func installParams(tab *symtab.Table, params *sitter.Node, src []byte) {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(paramQuery, params)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, cap := range match.Captures {
			if paramQuery.CaptureNameForId(cap.Index) != "pname" {
				continue
			}
			pname := cap.Node.Content(src)
			p := tab.Install(pname)
			p.Type = symtab.Identifier
			p.Storage = symtab.Auto
			p.Flag = symtab.Parm
			p.Level = 1
		}
	}
}

// walkCalls finds every direct call_expression in body and wires an
// AddCall edge plus a reference from the enclosing function fn. A
// callee with no visible binding gets a forward-declared placeholder
// installed on the spot (§4.2: an undefined-then-filled-in record),
// matching what a single-pass scan sees for functions called before
// their own definition appears.
func (c2 *Collaborator) walkCalls(tab *symtab.Table, fn *symtab.Symbol, source string, src []byte, body *sitter.Node) error {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(callQuery, body)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		for _, cap := range match.Captures {
			if callQuery.CaptureNameForId(cap.Index) != "name" {
				continue
			}
			calleeName := cap.Node.Content(src)
			line := int(cap.Node.StartPoint().Row) + 1

			callee := tab.Lookup(calleeName)
			if callee == nil {
				callee = tab.Install(calleeName)
				callee.Type = symtab.Identifier
				callee.Storage = symtab.Extern
			}
			tab.AddReference(callee, source, line)
			graph.AddCall(tab, fn, callee)
		}
	}
	return nil
}
