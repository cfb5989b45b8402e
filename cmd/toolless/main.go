// cmd/toolless/main.go
package main

import (
	cmd "github.com/mwiater/toolless/internal/cli"
)

// main starts the toolless CLI application by delegating to the cobra
// root command.
func main() {
	cmd.Execute()
}
