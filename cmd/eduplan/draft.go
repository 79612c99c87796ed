package main

import (
	"fmt"

	"github.com/jonathan/eduplan/internal/observability"
	"github.com/jonathan/eduplan/internal/types"
	"github.com/spf13/cobra"
)

var autofillPlan bool

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Rewrite the business idea with the advisor",
	Args:  cobra.NoArgs,
	RunE:  runRefine,
}

var fillFieldCmd = &cobra.Command{
	Use:   "fill-field <field>",
	Short: "Draft one company profile field",
	Long: `Draft one company profile field from the stored idea. The field is overwritten.
Field keys: businessName, founder, rfc, website, schedule, fiscalRegime, adn, valor,
competencia, mercado, vision2026, viabilidad, proyecciones, valores, pitch, blindaje.`,
	Args: cobra.ExactArgs(1),
	RunE: runFillField,
}

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Draft every empty company profile field, or the whole plan with --plan",
	Long: `Draft every empty company profile field. With --plan, draft the whole plan in one
request; values already written are kept.`,
	Args: cobra.NoArgs,
	RunE: runAutofill,
}

func init() {
	autofillCmd.Flags().BoolVar(&autofillPlan, "plan", false, "Draft the whole plan in one request")
	rootCmd.AddCommand(refineCmd)
	rootCmd.AddCommand(fillFieldCmd)
	rootCmd.AddCommand(autofillCmd)
}

func runRefine(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	idea, err := a.planner.RefineIdea(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), idea)
	return err
}

func runFillField(cmd *cobra.Command, args []string) error {
	field, err := types.ParseProfileField(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	value, err := a.planner.FillField(cmd.Context(), field)
	if err != nil {
		return fmt.Errorf("failed to draft %s: %w", field, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}

func runAutofill(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if autofillPlan {
		if err := a.planner.FillPlan(cmd.Context()); err != nil {
			return fmt.Errorf("failed to draft plan: %w", err)
		}
		view := a.planner.State()
		printer.PrintPlan(view)
		printer.PrintProfile(view.Profile)
		return nil
	}

	filled, err := a.planner.FillEmptyFields(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to draft profile: %w", err)
	}
	printer.PrintFilledFields(filled)
	return nil
}
