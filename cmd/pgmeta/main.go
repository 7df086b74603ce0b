// Package main is the entry point for the pgmeta binary.
package main

import (
	"os"

	"github.com/joacominatel/pgmeta/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
