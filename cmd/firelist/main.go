// Command firelist binds a live collection to a terminal list.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/firelist/cmd/firelist/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
