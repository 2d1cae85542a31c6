// Package main is the entry point for the crashcheck CLI.
package main

import (
	"os"

	"github.com/vacrashmap/crashcheck/cmd/crashcheck/commands"
)

func main() {
	os.Exit(commands.Execute())
}
