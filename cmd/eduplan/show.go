package main

import (
	"encoding/json"

	"github.com/jonathan/eduplan/internal/observability"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored plan",
	Long:  `Print the outline of the stored plan with a readiness mark per section, followed by the company profile.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the plan state as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	view := a.planner.State()
	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintPlan(view)
	printer.PrintProfile(view.Profile)
	return nil
}
