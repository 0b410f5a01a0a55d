package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkramer/go-skimpy/internal/config"
)

// ErrAlreadyReported is returned by a subcommand whose RunE has
// already printed a user-facing message to stderr itself (e.g.
// reportError's SkimpyError rendering) — Execute propagates it as a
// non-zero exit without printing anything further.
var ErrAlreadyReported = errors.New("")

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cfg holds .skimpyrc.yaml defaults, overridable by explicit flags on
// each subcommand.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "skimpy",
	Short: "Skimpy interpreter",
	Long: `skimpy is a tail-call-optimizing interpreter for Skimpy, a small
Scheme-like Lisp.

It evaluates programs through an analyze/evaluate pipeline: source is
tokenized, parsed into a concrete syntax tree, lazily analyzed into a
tree of steppable forms, and driven to a result by a trampoline that
never grows the Go call stack on a procedure's own self-tail-recursive
calls.`,
	Version: Version,
	// Subcommands report their own errors with position info
	// (reportError) and a usage dump on a Skimpy runtime error would
	// only confuse a source-level mistake with a CLI invocation one.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. A returned ErrAlreadyReported means
// the failure was already printed to stderr by the subcommand itself.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	loaded, err := config.Load()
	if err != nil {
		exitWithError("loading .skimpyrc.yaml: %v", err)
	}
	cfg = loaded
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
