// ABOUTME: Standalone MCP server binary for agent hosts
// ABOUTME: Equivalent to `coach mcp`, forwarding any global flags
package main

import (
	"fmt"
	"os"

	"github.com/harper/tap-coach/cmd/coach/commands"
)

func main() {
	root := commands.NewRootCmd()
	root.SetArgs(append([]string{"mcp"}, os.Args[1:]...))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
