// Command promptchart serves natural language charts over HTTP, MCP and
// the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptchart",
		Short: "Turn natural language into Chart.js-ready charts",
		Long: `promptchart turns a request like "revenue by region as a pie" into a chart
intent with an LLM, executes it against the dataset catalog and returns
Chart.js-ready data.

Environment:
  OPENAI_API_KEY / GEMINI_API_KEY   LLM credentials (LLM_PROVIDER picks one)
  CSV_DATASETS                      extra datasets as name=path,name2=path2`,
		Version:       version,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (optional)")

	rootCmd.AddCommand(newServeCmd(), newMCPCmd(), newDatasetsCmd(), newQueryCmd())
	return rootCmd
}
