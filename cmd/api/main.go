package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "docreport",
	Short:         "Contractor document compliance reports",
	Long:          "docreport scores contractor document compliance per contract and period, renders the HTML report and mails it to the contract's recipients.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// @title Document Report API
// @version 1.0
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
