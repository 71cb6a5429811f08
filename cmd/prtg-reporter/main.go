package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/netspec/prtg-reporter/internal/alerter"
	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/logging"
	"github.com/netspec/prtg-reporter/internal/notifier"
	"github.com/netspec/prtg-reporter/internal/opsgenie"
	"github.com/netspec/prtg-reporter/internal/prtg"
	"github.com/netspec/prtg-reporter/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "prtg-reporter",
		Short: "Report unhealthy PRTG sensors as a single Opsgenie alert",
		Long: `prtg-reporter polls the PRTG sensor table once, groups Unknown and Down
sensors by status and raises one Opsgenie alert with the report. If PRTG or
Opsgenie fails, the failure is posted to the configured Slack channels.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to an optional YAML configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Path to an optional dotenv file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return cmd
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, sinks, err := logging.New(cfg.Logging, stdout, time.Now())
	if err != nil {
		return err
	}
	defer sinks.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	dispatcher := alerter.NewDispatcher(cfg,
		prtg.NewClient(cfg.PRTG, httpClient, logger),
		opsgenie.NewClient(cfg.Opsgenie, httpClient, logger),
		notifier.NewNotifier(cfg.Slack, httpClient, logger),
		logger,
	)

	res := dispatcher.Run(ctx)
	logger.Debug().
		Str("run_id", res.RunID).
		Str("outcome", res.Outcome.String()).
		Msg("Run finished")

	return nil
}
