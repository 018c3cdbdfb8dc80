// Package cli implements the packt command line: problem generation and
// import, one-shot solving, parameter sweeps, batches and offline
// evaluation.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
	"github.com/piwi3910/packt/internal/project"
)

// Execute runs the root command; SIGINT and SIGTERM cancel any solver in
// flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd, a := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	_ = a.close()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand.
type app struct {
	debug      bool
	logFile    string
	configPath string

	config  model.AppConfig
	cleanup func() error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "packt",
		Short:        "packt: rectangle packing problem generator and solver harness",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable verbose logging")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write JSON logs to this file")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.packt/config.json)")

	cmd.AddCommand(
		generateCmd(a),
		importCmd(a),
		solveCmd(a),
		sweepCmd(a),
		batchCmd(a),
		evaluateCmd(a),
	)
	return cmd, a
}

func (a *app) setup() error {
	if a.debug || a.logFile != "" {
		cleanup, err := logger.Setup(logger.Config{Path: a.logFile, Debug: a.debug})
		if err != nil {
			return err
		}
		a.cleanup = cleanup
	}

	if a.configPath == "" {
		a.configPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg
	logger.L().Debug("config.loaded", "path", a.configPath)
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

// remember records path as a recently used problem.
func (a *app) remember(path string) {
	if path == "" {
		return
	}
	a.config.AddRecent(path)
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		logger.L().Warn("config.save_failed", "path", a.configPath, "error", err)
	}
}

// errFailures fails a sweep or batch whose records include errors, after
// every record has been reported.
var errFailures = errors.New("some solver runs failed")
