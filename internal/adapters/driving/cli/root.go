// Package cli implements the joss command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/config/file"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/core/services"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
)

var (
	version = "dev"

	verbose   bool
	configDir string

	// Set by the root pre-run hook.
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
)

// openConfigStore opens the configuration store. Tests replace it.
var openConfigStore = func(dir string) (driven.ConfigStore, error) {
	return file.NewConfigStore(dir)
}

// now is the wall clock used for log file names.
var now = time.Now

var rootCmd = &cobra.Command{
	Use:   "joss",
	Short: "Build a dataset of JOSS review submissions",
	Long: `joss collects the review issues of the Journal of Open Source Software
from GitHub and turns them into a dataset of published submissions.

The pipeline runs in steps, each reading the previous step's artifact:

  ingest     fetch every issue into github_issues_<ts>.json
  transform  normalize into github_issues_normalized_<ts>.json
  parse      extract submissions into joss_submissions_<ts>.json
  load       store normalized issues or submissions in SQLite
  export     write stored submissions as JSON or YAML

watch advances new artifacts through these steps automatically. browse,
stats and mcp serve read the SQLite dataset.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.joss)")
}

// setup configures logging and opens the configuration store.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	store, err := openConfigStore(configDir)
	if err != nil {
		return &domain.ConfigurationError{Setting: "config-dir", Reason: "cannot open configuration", Err: err}
	}
	configStore = store
	settingsService = services.NewSettingsService(store)
	return nil
}

// loadSettings returns the validated settings.
func loadSettings() (domain.Settings, error) {
	if settingsService == nil {
		return domain.Settings{}, errors.New("settings service not configured")
	}
	return settingsService.Get()
}

// startFileLog attaches the DEBUG file sink for one pipeline step.
func startFileLog(s domain.Settings, prefix string) error {
	if _, err := logger.SetupFileLogging(s.LogDir, prefix, now().Unix()); err != nil {
		return &domain.ConfigurationError{Setting: services.KeyLogDir, Reason: "cannot create log file", Err: err}
	}
	return nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and prints any error to stderr.
// It returns the process exit code.
func Execute() int {
	return run(rootCmd.ErrOrStderr())
}

func run(stderr io.Writer) int {
	err := rootCmd.Execute()
	logger.CloseFile()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case domain.IsConfigurationError(err):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}
