package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pluck/cmd/pluck"
	"github.com/arthur-debert/pluck/pkg/output"
	"github.com/arthur-debert/pluck/pkg/output/styles"
)

func main() {
	rootCmd := pluck.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		msg := fmt.Sprintf("Error: %v", err)
		if output.ColorEnabled(os.Stderr) {
			msg = styles.GetStyle("Error").Render(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(pluck.ExitCode(err))
	}
}
