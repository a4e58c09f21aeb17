package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/artifact"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/core/services"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch every issue of the review repository",
	Long: `Fetches all issues and pull requests of the configured repository,
page by page in creation order, and writes them unmodified to
github_issues_<timestamp>.json in the output directory.

The token is read from the environment variable named by github.token_env
(GITHUB_TOKEN by default). A rate-limited request is retried once after
the announced reset.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Normalize a raw issue artifact",
	Long: `Reads github_issues_<timestamp>.json and writes one fixed-shape record per
element to github_issues_normalized_<timestamp>.json. Missing or malformed
fields fall back to defaults and are counted, never fatal.`,
	Args: cobra.NoArgs,
	RunE: runTransform,
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract JOSS submissions from normalized issues",
	Long: `Reads github_issues_normalized_<timestamp>.json, extracts review metadata
from every issue body and writes published submissions to
joss_submissions_<timestamp>.json. Publication URLs of accepted papers
are resolved by following redirects.`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Store an artifact in the SQLite dataset",
	Long: `Loads a normalized issue artifact or a submission artifact into the
SQLite database. The kind is inferred from the file name. The artifact
replaces what was previously loaded of that kind, so loading a file twice
is harmless.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored submissions as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded ingest runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	ingestCmd.Flags().String("repo", "", "repository as owner/repo (default from config)")
	ingestCmd.Flags().Int("per-page", 0, "issues per page, 1-100 (default from config)")
	ingestCmd.Flags().Int("max-pages", 0, "stop after this many pages, 0 for all (default from config)")
	ingestCmd.Flags().String("direction", "", "creation order, asc or desc (default from config)")
	ingestCmd.Flags().String("output-dir", "", "artifact directory (default from config)")

	transformCmd.Flags().StringP("input", "i", "", "raw issue artifact")
	transformCmd.Flags().String("output-dir", "", "artifact directory (default from config)")
	_ = transformCmd.MarkFlagRequired("input")

	parseCmd.Flags().StringP("input", "i", "", "normalized issue artifact")
	parseCmd.Flags().String("output-dir", "", "artifact directory (default from config)")
	parseCmd.Flags().Bool("all-submissions", false, "also emit review submissions that are not yet published")
	_ = parseCmd.MarkFlagRequired("input")

	loadCmd.Flags().StringP("input", "i", "", "normalized issue or submission artifact")
	_ = loadCmd.MarkFlagRequired("input")

	exportCmd.Flags().String("format", "json", "output format, json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
}

// stepSettings loads settings and applies the command's override flags.
func stepSettings(cmd *cobra.Command) (domain.Settings, error) {
	s, err := loadSettings()
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("repo") {
		v, _ := flags.GetString("repo")
		target, err := domain.ParseRepoTarget(v)
		if err != nil {
			return s, err
		}
		s.Target = target
	}
	if flags.Changed("per-page") {
		s.PerPage, _ = flags.GetInt("per-page")
	}
	if flags.Changed("max-pages") {
		s.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("direction") {
		v, _ := flags.GetString("direction")
		s.Direction = domain.Direction(v)
	}
	if flags.Changed("output-dir") {
		s.OutputDir, _ = flags.GetString("output-dir")
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func runIngest(cmd *cobra.Command, _ []string) error {
	settings, err := stepSettings(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	bar := newPageProgress(cmd.ErrOrStderr(), logger.IsVerbose())

	svc, closeSvc, err := newIngestService(ctx, settings, bar.Update)
	if err != nil {
		return err
	}
	defer closeSvc()

	if err := startFileLog(settings, "ingest"); err != nil {
		return err
	}

	run, err := svc.Ingest(ctx, driving.IngestRequest{
		Target:    settings.Target,
		PerPage:   settings.PerPage,
		MaxPages:  settings.MaxPages,
		Direction: settings.Direction,
	})
	bar.Done()
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Collected %d issues from %s in %d pages.\n", run.Issues, run.Repository, run.Pages)
	cmd.Printf("Wrote %s\n", run.OutputPath)
	return nil
}

func runTransform(cmd *cobra.Command, _ []string) error {
	settings, err := stepSettings(cmd)
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")

	if err := startFileLog(settings, "transform"); err != nil {
		return err
	}

	res, err := newTransformService(settings).Transform(context.Background(), input)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	cmd.Printf("Normalized %d issues (%d with defaults).\n", res.Summary.Records, res.Summary.Defaulted)
	cmd.Printf("Wrote %s\n", res.OutputPath)
	return nil
}

func runParse(cmd *cobra.Command, _ []string) error {
	settings, err := stepSettings(cmd)
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")
	all, _ := cmd.Flags().GetBool("all-submissions")

	if err := startFileLog(settings, "parse"); err != nil {
		return err
	}

	res, err := newParseService(settings).Parse(context.Background(), driving.ParseRequest{
		InputPath:          input,
		IncludeUnpublished: all,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	printSummary(cmd, res.Summary)
	cmd.Printf("Wrote %d submissions to %s\n", res.Summary.Emitted, res.OutputPath)
	return nil
}

func printSummary(cmd *cobra.Command, summary *domain.Summary) {
	cmd.Printf("Processed %d issues:\n", summary.Records)
	for _, sc := range summary.StateCounts() {
		cmd.Printf("  %-45s %d\n", sc.State.Description(), sc.Count)
	}
	if summary.RedirectFailures > 0 {
		cmd.Printf("  %-45s %d\n", "Unresolved publication URLs", summary.RedirectFailures)
	}
}

func runLoad(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	input, _ := cmd.Flags().GetString("input")

	dataset, closeDataset, err := newDatasetStore(settings)
	if err != nil {
		return err
	}
	defer closeDataset()

	if err := startFileLog(settings, "load"); err != nil {
		return err
	}

	res, err := newLoadService(settings, dataset).Load(context.Background(), input)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	cmd.Printf("Loaded %d %s records.\n", res.Records, res.Kind)
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := domain.ParseExportFormat(formatFlag)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")

	dataset, closeDataset, err := newDatasetStore(settings)
	if err != nil {
		return err
	}
	defer closeDataset()

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	n, err := services.NewExportService(dataset, artifact.NewEncoder()).Export(context.Background(), w, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if output != "" {
		cmd.PrintErrf("Exported %d submissions to %s\n", n, output)
	}
	return nil
}

func runRuns(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	dataset, closeDataset, err := newDatasetStore(settings)
	if err != nil {
		return err
	}
	defer closeDataset()

	runs, err := dataset.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No ingest runs recorded.")
		return nil
	}
	for _, r := range runs {
		cmd.Printf("%s  %s  %s  pages=%d issues=%d  %s\n",
			r.ID, domain.UnixToISO(r.StartedAt), r.Repository, r.Pages, r.Issues, r.OutputPath)
	}
	return nil
}
