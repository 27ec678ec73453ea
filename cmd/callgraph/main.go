package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jward/callgraph"
	"github.com/jward/callgraph/internal/cparse"
	"github.com/jward/callgraph/internal/scripting"
	"github.com/spf13/cobra"
)

var (
	flagOutput      string
	flagXref        bool
	flagTree        bool
	flagReverse     bool
	flagStart       string
	flagMaxDepth    int
	flagLevels      bool
	flagLineNumbers bool
	flagGlobalsOnly bool
	flagBrief       bool
	flagOmit        []string
	flagDriver      string
	flagScript      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "callgraph [files...]",
	Short:         "Static call-graph analysis for C source",
	Long:          "callgraph parses C source files with tree-sitter, builds a symbol table and call graph, and renders a cross-reference listing and/or a call tree.",
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateDriver(flagDriver)
	},
	RunE: runCallgraph,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", `output path ("-" for standard output)`)
	rootCmd.Flags().BoolVar(&flagXref, "xref", false, "emit a cross-reference listing")
	rootCmd.Flags().BoolVar(&flagTree, "tree", true, "emit a call tree")
	rootCmd.Flags().BoolVarP(&flagReverse, "reverse", "r", false, "invert the tree: walk caller edges instead of callee edges")
	rootCmd.Flags().StringVar(&flagStart, "start", "", "root symbol name for a direct-mode tree (default: main if present, otherwise every symbol with callees)")
	rootCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "limit tree depth (0 disables the limit)")
	rootCmd.Flags().BoolVar(&flagLevels, "levels", false, "prefix each tree line with its depth")
	rootCmd.Flags().BoolVar(&flagLineNumbers, "line-numbers", false, "prefix each tree line with its output line number")
	rootCmd.Flags().BoolVar(&flagGlobalsOnly, "globals-only", false, "only include symbols with external linkage")
	rootCmd.Flags().BoolVar(&flagBrief, "brief", false, "only include symbols referenced from more than one source file, or with external linkage")
	rootCmd.Flags().StringSliceVar(&flagOmit, "omit", nil, "comma-separated symbol names to exclude")
	rootCmd.Flags().StringVar(&flagDriver, "driver", "plain", "output driver: plain|gnu|posix")
	rootCmd.Flags().StringVar(&flagScript, "script", "", "path to a Risor script driver, overriding --driver")
}

// validDrivers lists the built-in driver names accepted by --driver.
var validDrivers = []string{"plain", "gnu", "posix"}

func validateDriver(name string) error {
	for _, d := range validDrivers {
		if name == d {
			return nil
		}
	}
	return fmt.Errorf("invalid driver %q: must be one of %s", name, strings.Join(validDrivers, ", "))
}

func runCallgraph(cmd *cobra.Command, args []string) error {
	g := callgraph.NewGraph()
	col := cparse.New()

	for _, path := range args {
		if err := col.Walk(context.Background(), g.Table(), path, true); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	g.Table().DeleteStatics(flagGlobalsOnly)
	g.Table().Cleanup()

	opts := callgraph.Options{
		Path:             flagOutput,
		Xref:             flagXref,
		Tree:             flagTree,
		Reverse:          flagReverse,
		StartName:        flagStart,
		MaxDepth:         flagMaxDepth,
		PrintLevels:      flagLevels,
		PrintLineNumbers: flagLineNumbers,
		Include:          buildFilter(),
		DriverName:       flagDriver,
	}

	if flagScript != "" {
		drv, err := scripting.Load(flagScript)
		if err != nil {
			return fmt.Errorf("loading script driver: %w", err)
		}
		reg := callgraph.DefaultRegistry(callgraph.DriverOptions{
			PrintLevels:      flagLevels,
			PrintLineNumbers: flagLineNumbers,
		})
		reg.Register("script", drv.Handler())
		opts.Registry = reg
		opts.DriverName = "script"
	}

	return callgraph.Output(g, opts)
}

// buildFilter composes the inclusion predicate from the filter flags,
// per §6's "inclusion-filter flags... compose into the include_symbol
// predicate".
func buildFilter() callgraph.Filter {
	fns := []callgraph.Filter{callgraph.DefaultInclude}
	if flagGlobalsOnly {
		fns = append(fns, callgraph.GlobalsOnly)
	}
	if flagBrief {
		fns = append(fns, callgraph.Brief)
	}
	if len(flagOmit) > 0 {
		fns = append(fns, callgraph.OmitNames(flagOmit))
	}
	return callgraph.And(fns...)
}
