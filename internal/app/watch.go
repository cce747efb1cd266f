package app

import (
	"context"
	"fmt"

	"go.trai.ch/smelt/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
)

// Watch builds goals, then builds them again each time a file used as a source changes.
// A failing round is reported and watching goes on. Watch returns when ctx is done.
func (a *App) Watch(ctx context.Context, goals []string, mode detector.OutputMode) error {
	for {
		if err := a.Build(ctx, goals, mode); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Error(err)
		}
		if err := a.session.Close(); err != nil {
			a.logger.Error(err)
		}

		changed, err := a.waitForChange(ctx)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return nil
		}
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(changed)))
	}
}

// waitForChange watches the files used so far and returns the first debounced batch of
// changed paths, or nothing once ctx is done.
func (a *App) waitForChange(ctx context.Context) ([]string, error) {
	w, err := a.watchers()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = w.Stop()
	}()

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := w.Start(wctx, a.session.Watched()); err != nil {
		return nil, err
	}

	batches := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.config.WatchDebounce, func(paths []string) {
		select {
		case batches <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
	}()

	select {
	case <-ctx.Done():
		return nil, nil
	case paths := <-batches:
		return paths, nil
	}
}
