package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pluck/cmd/pluck"
	"github.com/arthur-debert/pluck/internal/version"
)

// Writes pluck.1 to stdout, or one page per command into the directory
// given as first argument.
func main() {
	rootCmd := pluck.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PLUCK",
		Section: "1",
		Source:  "pluck " + version.Version,
		Manual:  "pluck manual",
	}

	var err error
	if len(os.Args) > 1 {
		err = doc.GenManTree(rootCmd, header, os.Args[1])
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
