package callgraph

import (
	"github.com/jward/callgraph/internal/driver"
)

// Re-exported driver-contract types, so callers implementing a custom
// driver (or the CLI's --driver flag) never need to import the
// internal package directly.
type (
	Command       = driver.Command
	Context       = driver.Context
	SymbolEvent   = driver.SymbolEvent
	Handler       = driver.Handler
	Registry      = driver.Registry
	DriverOptions = driver.Options
)

const (
	CmdInit      = driver.Init
	CmdBegin     = driver.Begin
	CmdEnd       = driver.End
	CmdNewline   = driver.Newline
	CmdSeparator = driver.Separator
	CmdSymbol    = driver.Symbol
	CmdText      = driver.Text
)

// ErrDriverNotFound is returned by Registry.Select for an unknown name
// (§7 DriverNotFound).
var ErrDriverNotFound = driver.ErrNotFound

// DefaultRegistry returns a Registry with the three built-in drivers
// registered: "plain" (the default — matches spec §8's literal
// scenarios), "gnu" (continuation-bar tree drawing), and "posix" (flat,
// no trailing colon). opts configures line-number and level-brace
// prefixes, shared by all three.
func DefaultRegistry(opts driver.Options) *Registry {
	r := driver.NewRegistry()
	r.Register("plain", driver.NewPlain(opts))
	r.Register("gnu", driver.NewGNU(opts))
	r.Register("posix", driver.NewPOSIX(opts))
	return r
}
