// mapper-sql prints the SQL statements synthesized for tables declared
// in a configuration file.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
