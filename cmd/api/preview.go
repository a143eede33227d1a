package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docreport/internal/model"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render one contract report to an HTML file",
	RunE:  runPreview,
}

var (
	previewProject  string
	previewProvider string
	previewContract string
	previewPeriod   string
	previewOut      string
)

func init() {
	previewCmd.Flags().StringVar(&previewProject, "projeto", "", "Project (required)")
	previewCmd.Flags().StringVar(&previewProvider, "prestador", "", "Provider (required)")
	previewCmd.Flags().StringVar(&previewContract, "contrato", "", "Contract (required)")
	previewCmd.Flags().StringVar(&previewPeriod, "competencia", "", "Period, YYYY-MM (required)")
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "report.html", "Output HTML file")

	for _, name := range []string{"projeto", "prestador", "contrato", "competencia"} {
		if err := previewCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, loc, log := loadConfig()
	defer log.Sync() //nolint:errcheck

	a, err := newApplication(ctx, cfg, loc, log, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	key := model.ContractKey{Project: previewProject, Provider: previewProvider, Contract: previewContract}
	html, err := a.service.Preview(ctx, key, previewPeriod)
	if err != nil {
		return err
	}
	if err := os.WriteFile(previewOut, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", previewOut, err)
	}
	log.Info("preview written", zap.String("path", previewOut), zap.Int("bytes", len(html)))
	return nil
}
