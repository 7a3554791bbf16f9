// Package main provides the sqlshift CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlshift/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
