package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// runBrowser starts the interactive browser. Tests replace it.
var runBrowser = func(ctx context.Context, query driving.QueryService, filter domain.SubmissionFilter) error {
	app, err := tui.NewApp(&tui.Ports{Query: query})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	return app.WithContext(ctx).WithFilter(filter).Run()
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored submissions in the terminal",
	Long: `Opens an interactive browser over the submissions in the SQLite dataset.
Run load first to populate it.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Show submission
  /        - Filter by repository, author or editor
  p        - Toggle published only
  Esc      - Back / Clear filter
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the stored dataset",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	browseCmd.Flags().StringP("query", "q", "", "initial filter text")
	browseCmd.Flags().Bool("published", false, "start with published submissions only")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(statsCmd)
}

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// openQueryService opens the dataset store behind a query service.
func openQueryService() (driving.QueryService, func(), error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, noop, err
	}
	dataset, closeDataset, err := newDatasetStore(settings)
	if err != nil {
		return nil, noop, err
	}
	return newQueryService(dataset), closeDataset, nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("query")
	published, _ := cmd.Flags().GetBool("published")

	query, closeQuery, err := openQueryService()
	if err != nil {
		return err
	}
	defer closeQuery()

	ctx, cancel := interruptible(cmd)
	defer cancel()

	if err := runBrowser(ctx, query, domain.SubmissionFilter{Text: text, PublishedOnly: published}); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	query, closeQuery, err := openQueryService()
	if err != nil {
		return err
	}
	defer closeQuery()

	stats, err := query.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	cmd.Printf("Submissions: %d\n", stats.Submissions)
	cmd.Printf("Published:   %d\n", stats.Published)
	cmd.Printf("Open:        %d\n", stats.Open)
	cmd.Printf("Editors:     %d\n", stats.Editors)
	cmd.Printf("Reviewers:   %d\n", stats.Reviewers)
	if stats.LastRun != nil {
		cmd.Printf("Last ingest: %s (%s, %d issues)\n",
			domain.UnixToISO(stats.LastRun.StartedAt), stats.LastRun.Repository, stats.LastRun.Issues)
	} else {
		cmd.Println("Last ingest: never")
	}
	return nil
}
