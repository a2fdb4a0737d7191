// Command fpds searches FPDS contract awards from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/prognoshealth/fpdsproxy/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fpds: %v\n", err)
		os.Exit(1)
	}
}
