// Package main is the single-binary entrypoint for Quench.
package main

import "github.com/quench-app/quench/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
