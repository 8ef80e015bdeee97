package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-stock-pdf/internal/config"
)

func newRenderCmd(cfg *config.Config) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "render <stock.xlsx>",
		Short: "Convert a local spreadsheet into a PDF report",
		Example: `  stockpdf render planilla.xlsx
  stockpdf render -o - planilla.xls > stock.pdf
  stockpdf render --layout layout.yaml -o informe.pdf planilla.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", inputPath, err)
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			conv, err := newConverter(cfg, logger)
			if err != nil {
				return err
			}
			defer conv.Close()

			res, err := conv.Convert(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("converting %s: %w", inputPath, err)
			}

			if outputPath == "-" {
				_, err := res.WriteTo(cmd.OutOrStdout())
				return err
			}
			if outputPath == "" {
				outputPath = defaultOutputPath(inputPath)
			}
			if err := res.WriteToFile(outputPath, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d rows, %d pages\n", outputPath, res.Rows(), res.Pages())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", `Output file, "-" for stdout (default: input name with .pdf)`)
	return cmd
}

// defaultOutputPath swaps the spreadsheet extension for .pdf.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}
