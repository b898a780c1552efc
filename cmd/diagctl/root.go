// diagctl is the operator CLI: run a diagnosis from the command line and
// inspect or validate the knowledge base.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "diagctl",
	Short: "Device repair diagnosis from symptom descriptions",
	Long: "diagctl runs the diagnostic inference engine locally: it maps a\n" +
		"free-text symptom description and device metadata to ranked repair\n" +
		"diagnoses, without needing the API server.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(knowledgeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
