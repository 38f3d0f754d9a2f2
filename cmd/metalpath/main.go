// Command metalpath estimates the environmental impact of metal
// production pathways.
package main

import (
	"fmt"
	"os"

	"github.com/metalpath/metalpath/internal/cli"
	"github.com/metalpath/metalpath/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps failures to the process exit code.
// The root command silences cobra's own error printing, so failures are
// reported here exactly once.
func run() int {
	rootCmd := cli.NewRootCmd(version.GetVersion())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
