package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jonathan/eduplan/internal/config"
	"github.com/jonathan/eduplan/internal/narration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var narrateDryRun bool

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Read the plan aloud",
	Long: `Read the plan aloud in Spanish through the local speech command (espeak-ng unless
EDUPLAN_SPEECH_COMMAND or speech_command says otherwise). Ctrl-C stops the narration.`,
	Args: cobra.NoArgs,
	RunE: runNarrate,
}

func init() {
	narrateCmd.Flags().BoolVar(&narrateDryRun, "dry-run", false, "Print the narration script instead of speaking it")
	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, config.Config{})
	if err != nil {
		return err
	}

	var synth narration.Synthesizer
	if !narrateDryRun {
		process := narration.NewProcessSynthesizer(cfg.SpeechCommand)
		if !process.Available() {
			return fmt.Errorf("speech command %q not found", process.Command)
		}
		synth = process
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, cfg, synth)
	if err != nil {
		return err
	}
	defer a.Close()

	script := narration.BuildScript(a.currentPlan())
	if narrateDryRun {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), script)
		return err
	}

	id, err := a.narrator.Start(script)
	if err != nil {
		return err
	}
	a.logger.Debug("narration started", zap.String("utterance_id", id))

	if err := a.narrator.Wait(ctx); err != nil {
		a.narrator.Stop()
		if ctx.Err() != nil && cmd.Context().Err() == nil {
			return nil
		}
		return err
	}
	return nil
}
