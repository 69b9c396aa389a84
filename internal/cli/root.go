// Package cli wires the command surface over the task repository and the
// interruption coordinator. Input validation (empty descriptions, integer
// indices) happens here, before anything reaches the repository.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmagtoto/tala/internal/config"
	"github.com/rmagtoto/tala/internal/export"
	"github.com/rmagtoto/tala/internal/interrupt"
	"github.com/rmagtoto/tala/internal/logging"
	"github.com/rmagtoto/tala/internal/task"
	"github.com/rmagtoto/tala/internal/version"
)

var (
	flagDataDir       string
	flagRetentionDays int
)

var rootCmd = &cobra.Command{
	Use:     "tala",
	Short:   "Task tracker with one active task at a time",
	Long:    `Tala tracks tasks and their todos, keeping exactly one task active. Starting a new task interrupts the current one; interrupted tasks are resumed in bulk.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "dir", "", "data directory (default .tala)")
	rootCmd.PersistentFlags().IntVar(&flagRetentionDays, "retention-days", 0, "days to keep completed tasks (default 7)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hardDeleteCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(chatCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the constructed dependencies for one command invocation.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	cleanup func() error
	repo    *task.Repository
	coord   *interrupt.Coordinator
}

// newApp loads config, sets up logging, and constructs the repository and
// coordinator with their observers. Flags override the config file.
func newApp() (*app, error) {
	cfg, err := config.LoadFromDirectory(".")
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagRetentionDays > 0 {
		cfg.RetentionDays = flagRetentionDays
	}

	logger, cleanup, err := logging.Setup(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	repo := task.NewRepository(cfg.DataDir, cfg.RetentionDays, logger)
	coord := interrupt.NewCoordinator(cfg.DataDir, repo, logger)
	if cfg.Export.Markdown {
		exporter := export.NewMarkdownExporter(repo, cfg.Export.Path)
		repo.AddObserver(exporter)
		coord.AddObserver(exporter)
	}

	return &app{cfg: cfg, logger: logger, cleanup: cleanup, repo: repo, coord: coord}, nil
}

func (a *app) close() {
	if err := a.cleanup(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
}
