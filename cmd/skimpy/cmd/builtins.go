package cmd

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/vkramer/go-skimpy/pkg/skimpy"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the registered primitive procedures",
	Long:  `Print every name bound in a fresh interpreter's global environment, naturally sorted.`,
	RunE:  listBuiltins,
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}

func listBuiltins(_ *cobra.Command, _ []string) error {
	names := skimpy.New().Global().Names()
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
