package main

import (
	"github.com/spf13/cobra"

	"github.com/platewise/menugraph/internal/api"
	"github.com/platewise/menugraph/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "menugraph",
	Short: "Restaurant menu ingestion pipeline backed by generative extraction",
	Long: `Menugraph converts unstructured restaurant menu text (pasted text,
scraped pages, OCR output) into a validated, canonical menu graph.

The pipeline includes:
  - Heuristic content analysis (currency, language, layout)
  - Constrained LLM extraction with a fixed output schema
  - JSON recovery, normalization, and strict validation`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.menugraph/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
