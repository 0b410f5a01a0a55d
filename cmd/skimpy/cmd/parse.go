package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/vkramer/go-skimpy/pkg/skimpy"
)

var parseShowStructure bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Skimpy program and print its concrete syntax tree",
	Long: `Tokenize and parse a Skimpy program and print the resulting concrete
syntax tree, without evaluating it.

Examples:
  # Re-render a file's parsed tree back to source
  skimpy parse hello.skimpy

  # Show the tree's raw node structure instead
  skimpy parse --structure hello.skimpy`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseShowStructure, "structure", false, "print the tree's raw node structure instead of re-rendered source")
}

func parseScript(_ *cobra.Command, args []string) error {
	var source string
	if evalExpr != "" {
		source = evalExpr
	} else if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	interp := skimpy.New()
	node, err := interp.Parse(source)
	if err != nil {
		return reportError(err)
	}

	if parseShowStructure {
		fmt.Println(pretty.Sprint(node))
		return nil
	}
	fmt.Println(node.Pretty())
	return nil
}
