// Package main provides the entry point for the bookroll CLI tool.
package main

import "github.com/bookroll/bookroll/cmd/bookroll/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
