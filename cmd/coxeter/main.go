// Command coxeter runs coset enumerations described by TOML problem
// files. See internal/cli for the problem file format.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/cosets/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "coxeter:", err)
		os.Exit(1)
	}
}
