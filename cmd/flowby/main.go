// Command flowby runs the Flowby DSL: a Python-indentation-style language
// for scripting web-automation workflows.
package main

import (
	"fmt"
	"os"

	"github.com/flowbylang/flowby/cmd/flowby/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
