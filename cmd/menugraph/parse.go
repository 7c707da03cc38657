package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/platewise/menugraph/internal/api"
	"github.com/platewise/menugraph/internal/config"
	"github.com/platewise/menugraph/internal/llmcall"
	"github.com/platewise/menugraph/internal/menu"
	"github.com/platewise/menugraph/internal/parse"
)

var (
	parsePreserveFormat  bool
	parseGenerateDesc    bool
	parseInferCategories bool
	parseDetectCurrency  bool
	parseMultiLanguage   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a menu file (or stdin) into a canonical menu graph",
	Long: `Parse runs the full ingestion pipeline over one document and prints
the resulting menu graph.

Examples:
  menugraph parse menu.txt
  cat menu.txt | menugraph parse
  menugraph parse menu.txt --infer-categories -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		var (
			content []byte
			source  string
			err     error
		)
		if len(args) == 1 {
			source = args[0]
			content, err = os.ReadFile(args[0])
		} else {
			source = "stdin"
			content, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read menu content: %w", err)
		}
		if len(content) == 0 {
			return fmt.Errorf("no menu content provided")
		}

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		recorder := llmcall.NewRecorder(llmcall.NewStore(cm.Get().Pipeline.CallLogSize))
		parser, err := parse.NewFromConfig(cm.Get(), logger, recorder)
		if err != nil {
			return err
		}

		structure, err := parser.Parse(cmd.Context(), string(content), source, menu.Options{
			PreserveOriginalFormat:  parsePreserveFormat,
			GenerateDescriptions:    parseGenerateDesc,
			InferCategories:         parseInferCategories,
			DetectCurrency:          parseDetectCurrency,
			HandleMultipleLanguages: parseMultiLanguage,
		})
		if err != nil {
			return err
		}

		return api.Output(structure)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parsePreserveFormat, "preserve-format", false, "keep source wording verbatim")
	parseCmd.Flags().BoolVar(&parseGenerateDesc, "generate-descriptions", false, "synthesize missing item descriptions")
	parseCmd.Flags().BoolVar(&parseInferCategories, "infer-categories", false, "group items when no sections are explicit")
	parseCmd.Flags().BoolVar(&parseDetectCurrency, "detect-currency", false, "apply the detected currency to every item")
	parseCmd.Flags().BoolVar(&parseMultiLanguage, "multi-language", false, "tolerate mixed-language content")
}
