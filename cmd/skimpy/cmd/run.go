package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	spretty "github.com/vkramer/go-skimpy/internal/pretty"
	"github.com/vkramer/go-skimpy/internal/serror"
	"github.com/vkramer/go-skimpy/pkg/skimpy"
)

var (
	evalExpr string
	dumpCST  bool
	dumpAST  bool
	traceRun bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Skimpy program",
	Long: `Execute a Skimpy program from a file or inline expression.

Examples:
  # Run a script file
  skimpy run hello.skimpy

  # Evaluate an inline expression
  skimpy run -e "(display (+ 1 2))"

  # Dump the concrete syntax tree before running
  skimpy run --dump-cst hello.skimpy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpCST, "dump-cst", false, "dump the concrete syntax tree as re-rendered source")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", cfg.DumpAST, "dump the concrete syntax tree's structure")
	runCmd.Flags().BoolVar(&traceRun, "trace", cfg.Trace, "report the final value after execution")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string
	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	interp := skimpy.New()

	if dumpCST || dumpAST {
		node, err := interp.Parse(source)
		if err != nil {
			return reportError(err)
		}
		if dumpCST {
			fmt.Println(node.Pretty())
		}
		if dumpAST {
			fmt.Println(pretty.Sprint(node))
		}
	}

	result, err := interp.Eval(source)
	if err != nil {
		return reportError(err)
	}

	if traceRun {
		rendered, err := spretty.Write(result, 0, 0)
		if err != nil {
			return reportError(err)
		}
		fmt.Fprintf(os.Stderr, "=> %s\n", rendered)
	}

	return nil
}

// reportError prints a *serror.SkimpyError's line/col-anchored message
// directly to stderr and returns cmd.ErrAlreadyReported, a sentinel
// that tells main not to print the error a second time while still
// propagating a non-zero exit code through cobra.
func reportError(err error) error {
	if se, ok := err.(*serror.SkimpyError); ok {
		fmt.Fprintln(os.Stderr, se.Error())
		return ErrAlreadyReported
	}
	return err
}
