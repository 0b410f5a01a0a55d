// Command skimpy runs the Skimpy interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/vkramer/go-skimpy/cmd/skimpy/cmd"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns a process exit code. It is
// factored out of main so the testscript harness (main_test.go) can
// invoke it in-process as a subprocess command without an os.Exit that
// would kill the test binary.
func run() int {
	if err := cmd.Execute(); err != nil {
		if err != cmd.ErrAlreadyReported {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
