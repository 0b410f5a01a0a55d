package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkramer/go-skimpy/internal/pretty"
	"github.com/vkramer/go-skimpy/internal/value"
	"github.com/vkramer/go-skimpy/pkg/skimpy"
)

const replPrompt = "skimpy> "

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Long:  `Read Skimpy forms from stdin one at a time, evaluate each against a persistent global environment, and print its value.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(*cobra.Command, []string) error {
	return repl(os.Stdin, os.Stdout)
}

func repl(in io.Reader, out io.Writer) error {
	interp := skimpy.New(skimpy.WithOutput(out))
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, replPrompt)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(out, replPrompt)
			continue
		}
		result, err := interp.Eval(line)
		if err != nil {
			fmt.Fprintln(out, err)
		} else if _, ok := result.(value.NonReturn); !ok {
			rendered, perr := pretty.Write(result, 0, 0)
			if perr != nil {
				fmt.Fprintln(out, perr)
			} else {
				fmt.Fprintln(out, rendered)
			}
		}
		fmt.Fprint(out, replPrompt)
	}
	return scanner.Err()
}
