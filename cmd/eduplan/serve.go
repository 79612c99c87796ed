package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/eduplan/internal/config"
	"github.com/jonathan/eduplan/internal/logging"
	"github.com/jonathan/eduplan/internal/narration"
	"github.com/jonathan/eduplan/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort         int
	serveCORSOrigin   string
	servePrintTimeout int
	serveSpeech       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the plan editor over REST: catalog, selection,
editing, drafting, export, printable document and narration endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveCORSOrigin, "cors-origin", "", "Allowed CORS origin (default *)")
	serveCmd.Flags().IntVar(&servePrintTimeout, "print-timeout", 0, "PDF print timeout in seconds")
	serveCmd.Flags().BoolVar(&serveSpeech, "speech", false, "Narrate through the local speech command instead of silently")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, config.Config{
		Port:               servePort,
		CORSOrigin:         serveCORSOrigin,
		PrintTimeoutSecond: servePrintTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var synth narration.Synthesizer
	if serveSpeech {
		process := narration.NewProcessSynthesizer(cfg.SpeechCommand)
		if !process.Available() {
			return fmt.Errorf("speech command %q not found", process.Command)
		}
		synth = process
	}

	a, err := newApp(ctx, cfg, synth)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(server.Config{
		Port:         cfg.Port,
		CORSOrigin:   cfg.CORSOrigin,
		PrintTimeout: time.Duration(cfg.PrintTimeoutSecond) * time.Second,
	}, a.planner, a.narrator, logging.Module(a.logger, "server"))

	a.logger.Info("eduplan ready",
		zap.String("addr", srv.Addr()),
		zap.String("methodology", string(a.planner.State().Methodology)))
	return srv.Start(ctx)
}
