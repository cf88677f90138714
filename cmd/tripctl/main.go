// Command tripctl manages trips and their checklists from the terminal,
// over the same storage backends as the API server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout).execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
