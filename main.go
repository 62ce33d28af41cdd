// Package main provides the entry point for the coordtransf command.
package main

import (
	"fmt"
	"os"

	"coord-transf/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "coordtransf: %v\n", err)
		os.Exit(1)
	}
}
