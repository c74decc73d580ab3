// Package main is the entry point for the genomix CLI.
//
// genomix provisions and tears down the cloud footprint of multi-party
// genomic studies: an isolated VPC per project, one subnet and one protocol
// VM per participant, and a full peering mesh between the participating
// projects.
//
// Commands: setup, restart, delete, stop, version.
//
// For detailed usage information, run:
//
//	genomix --help
package main

import (
	"fmt"
	"os"

	"github.com/genomix-mpc/genomix/cmd/genomix/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
