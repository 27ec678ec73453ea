package main

import (
	"testing"

	"github.com/jward/callgraph"
	"github.com/stretchr/testify/assert"
)

func TestValidateDriverAcceptsBuiltins(t *testing.T) {
	for _, name := range []string{"plain", "gnu", "posix"} {
		assert.NoError(t, validateDriver(name))
	}
}

func TestValidateDriverRejectsUnknown(t *testing.T) {
	err := validateDriver("fancy")
	assert.Error(t, err)
}

func TestBuildFilterOmitsNamedSymbols(t *testing.T) {
	flagGlobalsOnly, flagBrief = false, false
	flagOmit = []string{"hidden"}
	defer func() { flagOmit = nil }()

	f := buildFilter()

	shown := &callgraph.Symbol{Name: "shown", Type: callgraph.Identifier, Storage: callgraph.Extern}
	hidden := &callgraph.Symbol{Name: "hidden", Type: callgraph.Identifier, Storage: callgraph.Extern}

	assert.True(t, f(shown))
	assert.False(t, f(hidden))
}

func TestBuildFilterGlobalsOnlyDropsStatics(t *testing.T) {
	flagGlobalsOnly = true
	flagBrief = false
	flagOmit = nil
	defer func() { flagGlobalsOnly = false }()

	f := buildFilter()

	staticFn := &callgraph.Symbol{Name: "helper", Type: callgraph.Identifier, Storage: callgraph.Static}
	assert.False(t, f(staticFn))
}
