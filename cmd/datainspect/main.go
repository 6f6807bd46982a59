// Package main is the entry point for the DataInspect CLI.
package main

import (
	"fmt"
	"os"

	"github.com/datainspect/datainspect/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
