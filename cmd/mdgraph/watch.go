package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inful/mdgraph/internal/logfields"
)

// debounceInterval batches bursts of file events (editors often write a file
// several times in quick succession) into one re-run.
const debounceInterval = 500 * time.Millisecond

// watch re-runs processing whenever a file under the input directory changes,
// until interrupted.
func (p *processor) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(p.cfg.Input); err != nil {
		return err
	}

	slog.Info("Watching for changes", logfields.File(p.cfg.Input))

	done := make(chan struct{})
	go func() {
		defer close(done)
		waitForShutdown()
	}()

	var debounce *time.Timer
	runs := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case <-runs:
			if err := p.runOnce(context.Background()); err != nil {
				// Keep watching after a failed run; the next save may fix it.
				slog.Error("Re-processing failed", logfields.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))

		case <-done:
			slog.Info("Shutting down watcher")
			return nil
		}
	}
}
