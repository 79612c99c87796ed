package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jonathan/eduplan/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	exportOut        string
	printOut         string
	printHTML        bool
	printTimeoutFlag int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan as plain text",
	Long: `Export the plan as plain text. Without --out the file is named after the business idea
(EduPlan_<idea>.txt) in the current directory; "--out -" writes to standard output.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the printable document as PDF or HTML",
	Long: `Render the formal plan document. The PDF is printed by a headless Chrome; --html writes
the document markup instead.`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (\"-\" for stdout)")
	printCmd.Flags().StringVarP(&printOut, "out", "o", "", "Output file (\"-\" for stdout)")
	printCmd.Flags().BoolVar(&printHTML, "html", false, "Write HTML instead of PDF")
	printCmd.Flags().IntVar(&printTimeoutFlag, "timeout", 0, "Print timeout in seconds")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(printCmd)
}

// currentPlan returns the plan as the renderers see it
func (a *app) currentPlan() rendering.Plan {
	view := a.planner.State()
	return rendering.Plan{Methodology: view.Methodology, Snapshot: view.Snapshot()}
}

// writeOutput writes data to path, or to the command's stdout when path is "-"
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return err
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	plan := a.currentPlan()
	out := exportOut
	if out == "" {
		out = rendering.ExportFilename(plan.Idea)
	}
	return writeOutput(cmd, out, []byte(rendering.ExportText(plan)))
}

func runPrint(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	plan := a.currentPlan()
	html, err := rendering.RenderHTML(rendering.BuildDocument(plan, time.Now()))
	if err != nil {
		return err
	}

	out := printOut
	base := strings.TrimSuffix(rendering.ExportFilename(plan.Idea), ".txt")
	if printHTML {
		if out == "" {
			out = base + ".html"
		}
		return writeOutput(cmd, out, []byte(html))
	}

	timeout := time.Duration(a.cfg.PrintTimeoutSecond) * time.Second
	if printTimeoutFlag > 0 {
		timeout = time.Duration(printTimeoutFlag) * time.Second
	}
	pdf, err := rendering.PrintPDF(cmd.Context(), html, timeout, a.logger)
	if err != nil {
		return err
	}
	if out == "" {
		out = base + ".pdf"
	}
	return writeOutput(cmd, out, pdf)
}
