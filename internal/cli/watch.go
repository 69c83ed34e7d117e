package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/ports"
)

// WatchableLoader is a tour loader that reports changed tour IDs.
type WatchableLoader interface {
	ports.TourLoader
	Watch(ctx context.Context) (<-chan string, error)
}

// debounce lets a burst of file events settle before re-validating.
const debounce = 100 * time.Millisecond

// Validate checks every tour of loader and prints the outcome.
func Validate(loader ports.TourLoader, out io.Writer) error {
	if err := validator.ValidateLoader(loader); err != nil {
		fmt.Fprintln(out, tui.Status(false, "Validation failed:"))
		fmt.Fprintln(out, err)
		return err
	}
	ids, _ := loader.ListTours()
	fmt.Fprintln(out, tui.Status(true, fmt.Sprintf("%d tours are valid.", len(ids))))
	return nil
}

// WatchValidate validates once, then again after every change until ctx ends.
func WatchValidate(ctx context.Context, loader WatchableLoader, out io.Writer, logger *slog.Logger) error {
	_ = Validate(loader, out)

	changes, err := loader.Watch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Waiting for changes...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("Change detected", "tour", id)
			fmt.Fprintf(out, "\n>>> Change detected in '%s'.\n", id)

			timer := time.NewTimer(debounce)
		drain:
			for {
				select {
				case <-ctx.Done():
					timer.Stop()
					return nil
				case _, ok := <-changes:
					if !ok {
						break drain
					}
				case <-timer.C:
					break drain
				}
			}
			_ = Validate(loader, out)
		}
	}
}
