package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets the test binary double as the `skimpy` command: each
// txtar script's "exec skimpy ..." line forks this same binary with an
// environment variable testscript sets, which dispatches straight to
// run() instead of the normal go test harness.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"skimpy": run,
	}))
}

// TestScripts black-box tests the CLI end to end: argument parsing,
// exit codes, and stdout/stderr shape, the way the teacher's cobra-based
// CLI tree would be driven from outside the process rather than by
// calling cobra.Command.Execute directly.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
