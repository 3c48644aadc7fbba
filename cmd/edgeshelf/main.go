// Package main is the entry point for EdgeShelf.
//
// Release builds link as a GUI program so no console window appears:
//
//	go build -tags production -ldflags "-H=windowsgui" ./cmd/edgeshelf
package main

import (
	"os"

	"github.com/edgeshelf/edgeshelf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
