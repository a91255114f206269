package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leengari/lexitab/internal/loader"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <descriptor>",
		Short: "Validate a dataset against its descriptor",
		Long: `Validate loads the descriptor and every declared data file, checking
type conformance, primary-key uniqueness and referential integrity.

Exit code 0 means the dataset is valid. On failure the offending table,
row and column are reported and the exit code is non-zero.`,
		Example: `  # One-shot validation
  lexitab validate data/descriptor.json

  # Re-validate whenever a data file changes
  lexitab validate data/descriptor.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			if watch {
				return watchAndValidate(cmd.Context(), cmd.OutOrStdout(), args[0])
			}
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().Bool("watch", false, "re-validate when the descriptor or a data file changes")

	return cmd
}

func runValidate(out io.Writer, descriptorPath string) error {
	ds, err := loader.LoadWithOptions(descriptorPath, logger, loader.Options{Strict: cfg.Strict})
	if err != nil {
		return err
	}

	total := 0
	for _, name := range ds.TableNames() {
		t, _ := ds.Table(name)
		total += t.Len()
	}
	fmt.Fprintf(out, "dataset %q is valid: %d tables, %d rows\n", ds.Name(), len(ds.TableNames()), total)
	return nil
}

// watchAndValidate validates once, then re-validates on every change to the
// descriptor directory. Events are debounced since editors fire several per
// save.
func watchAndValidate(ctx context.Context, out io.Writer, descriptorPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(descriptorPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	report := func() {
		if err := runValidate(out, descriptorPath); err != nil {
			logger.Error("validation failed", slog.Any("error", err))
		}
	}
	report()

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			ext := filepath.Ext(event.Name)
			if ext != ".csv" && ext != ".tsv" && ext != ".json" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(300*time.Millisecond, func() {
				logger.Info("change detected", slog.String("file", event.Name))
				report()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", slog.Any("error", err))
		}
	}
}
