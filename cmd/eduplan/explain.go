package main

import (
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/observability"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <section-id>",
	Short: "Explain what a section should contain",
	Long: `Select a section of the active outline and print the advisor's explanation of it,
tailored to the stored business idea.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := a.planner.SelectSection(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	title := args[0]
	if section, ok := catalog.Find(a.planner.State().Methodology, args[0]); ok {
		title = section.Title
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintExplanation(title, text)
	return nil
}
