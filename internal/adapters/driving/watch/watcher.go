// Package watch monitors a drop directory for labelled dataset files.
//
// Any *.csv file created in the watched directory is read, submitted to
// the dataset service and renamed with a ".done" suffix so it is not
// picked up again. Submissions are rate limited so a burst of dropped
// files coalesces into spaced retraining attempts rather than a
// retrain per file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/verilabs/veritext/internal/adapters/driven/dataset/csvfile"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
)

// DefaultInterval is the minimum spacing between submissions.
const DefaultInterval = 10 * time.Second

// settleDelay gives the writer time to finish the file after the
// create event fires.
const settleDelay = 100 * time.Millisecond

// Watcher submits dataset files dropped into a directory.
type Watcher struct {
	dataset driving.DatasetService
	dir     string
	limiter *rate.Limiter
}

// New creates a watcher for dir. A non-positive interval falls back to
// DefaultInterval.
func New(dataset driving.DatasetService, dir string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		dataset: dataset,
		dir:     dir,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run watches the directory until ctx is cancelled. Files already
// present at startup are submitted first, oldest path order.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for dataset files", w.dir)

	if err := w.drainExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) || !isDataset(event.Name) {
				continue
			}
			time.Sleep(settleDelay)
			if err := w.submitFile(ctx, event.Name); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Skipping %s: %v", event.Name, err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// drainExisting submits dataset files that were already in the
// directory before watching started.
func (w *Watcher) drainExisting(ctx context.Context) error {
	paths, err := filepath.Glob(filepath.Join(w.dir, "*.csv"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", w.dir, err)
	}
	for _, path := range paths {
		if err := w.submitFile(ctx, path); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("Skipping %s: %v", path, err)
		}
	}
	return nil
}

// submitFile reads, submits and retires one dataset file.
func (w *Watcher) submitFile(ctx context.Context, path string) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	rows, err := csvfile.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := w.dataset.Submit(ctx, rows)
	if err != nil {
		return err
	}
	logger.Info("Submitted %s: %d accepted, %d rejected (retrain triggered: %v)",
		filepath.Base(path), result.AcceptedCount, len(result.Rejected), result.TriggeredRetrain)

	// Retire the file so a restart does not resubmit it.
	if err := os.Rename(path, path+".done"); err != nil {
		return fmt.Errorf("retire %s: %w", path, err)
	}
	return nil
}

func isDataset(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
