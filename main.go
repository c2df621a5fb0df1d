// Package main is the entry point for the pipup CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The pipup tool enumerates outdated pip
// packages and upgrades them, optionally in parallel.
package main

import "github.com/ajxudir/pipup/cmd"

// main initializes and runs the pipup CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like list, outdated, and upgrade.
func main() {
	cmd.Execute()
}
