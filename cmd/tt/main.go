// Package main is the entry point for the tt CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thinktodo/tt/internal/app"
	"github.com/thinktodo/tt/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container := app.New(cwd)
	defer func() { _ = container.Close() }()

	return cli.NewRootCommand(container, version).Execute()
}
