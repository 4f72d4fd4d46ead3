// Package main is the entry point for the dk CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/datekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
