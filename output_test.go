package callgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputWritesToFileWhenPathGiven(t *testing.T) {
	g := NewGraph()
	main := installFn(g, "main", "main.c", 1)
	a := installFn(g, "a", "main.c", 3)
	g.AddCall(main, a)

	path := filepath.Join(t.TempDir(), "out.txt")
	err := Output(g, Options{Path: path, Tree: true, StartName: "main"})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "main() <main.c:1>:")
	assert.Contains(t, string(got), "a() <main.c:3>")
}

func TestOutputRejectsUnknownDriver(t *testing.T) {
	g := NewGraph()
	installFn(g, "main", "main.c", 1)

	err := Output(g, Options{Path: "-", Tree: true, DriverName: "nonexistent"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDriverNotFound)
}

func TestOutputUsesCustomRegistry(t *testing.T) {
	g := NewGraph()
	installFn(g, "main", "main.c", 1)

	var called bool
	reg := DefaultRegistry(DriverOptions{})
	reg.Register("probe", func(cmd Command, ctx *Context) (bool, error) {
		if cmd == CmdInit {
			called = true
		}
		return false, nil
	})

	path := filepath.Join(t.TempDir(), "out.txt")
	err := Output(g, Options{Path: path, Tree: true, DriverName: "probe", Registry: reg})
	require.NoError(t, err)
	assert.True(t, called)
}
