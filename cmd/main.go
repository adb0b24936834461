/*
Package main is the entry point of wgdash, the WireGuard connection manager front end.

`wgdash serve` runs the local web dashboard. The other subcommands use the same stored
session from the terminal.
*/
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
