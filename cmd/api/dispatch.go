package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docreport/internal/compliance"
	"docreport/internal/model"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Send the report of every contract with recipients for a period",
	RunE:  runDispatch,
}

var (
	dispatchPeriod string
	dispatchDryRun bool
)

func init() {
	dispatchCmd.Flags().StringVar(&dispatchPeriod, "competencia", "", "Period to dispatch, YYYY-MM (required)")
	dispatchCmd.Flags().BoolVar(&dispatchDryRun, "dry-run", false, "Print the planned sends without mailing")
	if err := dispatchCmd.MarkFlagRequired("competencia"); err != nil {
		panic(fmt.Sprintf("failed to mark competencia flag as required: %v", err))
	}
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	if !compliance.ValidPeriod(dispatchPeriod) {
		return fmt.Errorf("invalid --competencia %q, expected YYYY-MM", dispatchPeriod)
	}
	ctx := cmd.Context()

	cfg, loc, log := loadConfig()
	defer log.Sync() //nolint:errcheck

	a, err := newApplication(ctx, cfg, loc, log, appOptions{needMail: !dispatchDryRun})
	if err != nil {
		return err
	}
	defer a.Close()

	consult, err := a.service.Consult(ctx, dispatchPeriod)
	if err != nil {
		return err
	}
	plan := planDispatches(consult.Contracts)
	if dispatchDryRun {
		return printPlan(cmd.OutOrStdout(), plan)
	}
	if len(plan) == 0 {
		log.Info("nothing to dispatch", zap.String("period", dispatchPeriod))
		return nil
	}

	res, err := a.service.SendBatch(ctx, plan)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// planDispatches turns the consulted contracts into sends, one per contract, using the
// recipients stored with the contract.
func planDispatches(contracts []model.ContractForSending) []model.Dispatch {
	plan := make([]model.Dispatch, 0, len(contracts))
	for _, c := range contracts {
		plan = append(plan, model.Dispatch{
			Project:  c.Project,
			Provider: c.Provider,
			Contract: c.Contract,
			Period:   c.Period,
			Emails:   compliance.ParseRecipients(c.RecipientEmails),
		})
	}
	return plan
}

func printPlan(w io.Writer, plan []model.Dispatch) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJETO\tPRESTADOR\tCONTRATO\tCOMPETENCIA\tEMAILS")
	for _, d := range plan {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Project, d.Provider, d.Contract, d.Period, strings.Join(d.Emails, ", "))
	}
	fmt.Fprintf(tw, "\n%d envio(s) planejado(s)\n", len(plan))
	return tw.Flush()
}
