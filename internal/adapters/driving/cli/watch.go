package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/core/services"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Advance new artifacts through the pipeline",
	Long: `Watches the output directory and runs the next step for every artifact
that appears in it: raw issue files are transformed, normalized files are
parsed, and with --load submission files are stored in SQLite.

Start watch, then run ingest from another terminal. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("output-dir", "", "artifact directory (default from config)")
	watchCmd.Flags().Bool("all-submissions", false, "also emit review submissions that are not yet published")
	watchCmd.Flags().Bool("load", false, "load submission artifacts into the dataset")
	rootCmd.AddCommand(watchCmd)
}

// artifactWatcher runs the step that consumes each new artifact.
type artifactWatcher struct {
	transform driving.TransformService
	parse     driving.ParseService
	load      driving.LoadService // nil leaves submission files alone

	includeUnpublished bool
	out                io.Writer

	// done holds paths already processed successfully. A failed step is
	// retried on the next event for the same file.
	done map[string]bool
}

func newArtifactWatcher(
	transform driving.TransformService, parse driving.ParseService, load driving.LoadService, out io.Writer,
) *artifactWatcher {
	return &artifactWatcher{
		transform: transform,
		parse:     parse,
		load:      load,
		out:       out,
		done:      make(map[string]bool),
	}
}

// handle processes one file system event. It returns the path of the
// artifact written by the step, or "" when the event was ignored.
func (w *artifactWatcher) handle(ctx context.Context, ev fsnotify.Event) (string, error) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", nil
	}
	if filepath.Ext(ev.Name) != ".json" || w.done[ev.Name] {
		return "", nil
	}
	kind, ok := domain.ArtifactKindFromFilename(ev.Name)
	if !ok {
		return "", nil
	}

	var (
		output string
		err    error
	)
	switch kind {
	case domain.ArtifactRawIssues:
		var res *driving.StepResult
		if res, err = w.transform.Transform(ctx, ev.Name); err == nil {
			output = res.OutputPath
			fmt.Fprintf(w.out, "Normalized %d issues into %s\n", res.Summary.Records, filepath.Base(output))
		}
	case domain.ArtifactNormalizedIssues:
		var res *driving.StepResult
		req := driving.ParseRequest{InputPath: ev.Name, IncludeUnpublished: w.includeUnpublished}
		if res, err = w.parse.Parse(ctx, req); err == nil {
			output = res.OutputPath
			fmt.Fprintf(w.out, "Extracted %d submissions into %s\n", res.Summary.Emitted, filepath.Base(output))
		}
	case domain.ArtifactSubmissions:
		if w.load == nil {
			return "", nil
		}
		var res *driving.LoadResult
		if res, err = w.load.Load(ctx, ev.Name); err == nil {
			output = ev.Name
			fmt.Fprintf(w.out, "Loaded %d submissions from %s\n", res.Records, filepath.Base(ev.Name))
		}
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", filepath.Base(ev.Name), err)
	}

	w.done[ev.Name] = true
	return output, nil
}

// run consumes events until ctx is cancelled or the watcher closes.
// Step failures are reported and do not stop the loop.
func (w *artifactWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := w.handle(ctx, ev); err != nil {
				logger.Warn("watch: %v", err)
				fmt.Fprintf(w.out, "Error: %v\n", err)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	settings, err := stepSettings(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all-submissions")
	withLoad, _ := cmd.Flags().GetBool("load")

	var load driving.LoadService
	if withLoad {
		dataset, closeDataset, err := newDatasetStore(settings)
		if err != nil {
			return err
		}
		defer closeDataset()
		load = newLoadService(settings, dataset)
	}

	if err := startFileLog(settings, "watch"); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()
	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		return &domain.ConfigurationError{Setting: services.KeyOutputDir, Reason: "cannot create directory", Err: err}
	}
	if err := fw.Add(settings.OutputDir); err != nil {
		return &domain.ConfigurationError{Setting: services.KeyOutputDir, Reason: "cannot watch directory", Err: err}
	}

	w := newArtifactWatcher(newTransformService(settings), newParseService(settings), load, cmd.OutOrStdout())
	w.includeUnpublished = all

	ctx, cancel := interruptible(cmd)
	defer cancel()

	cmd.PrintErrf("Watching %s (Ctrl-C to stop)\n", settings.OutputDir)
	return w.run(ctx, fw.Events, fw.Errors)
}
