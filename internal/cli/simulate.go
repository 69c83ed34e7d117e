package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/adapters/clock"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/ports"
)

// drainLimit bounds the callbacks run between two inputs.
const drainLimit = 10_000

// SimulateOptions configures a simulated run of a tour against a static layout.
type SimulateOptions struct {
	Tour     domain.Tour
	Document *memory.Document
	Store    ports.CompletionStore
	Logger   *slog.Logger
	Hooks    domain.LifecycleHooks
	Guide    []waypoint.Option

	// Force starts the tour even if it was completed.
	Force bool

	// Auto presses Next on every step instead of reading input.
	Auto bool

	In    io.Reader
	Out   io.Writer
	Width int
}

// Result summarizes a simulated run.
type Result struct {
	Started   bool
	Completed bool
	// Shown lists step indexes in the order their callouts appeared.
	Shown   []int
	Skipped []int
	// LastIndex is the index the tour ended on.
	LastIndex int
}

// Simulate runs a tour in virtual time. Each shown callout is drawn as a
// frame; input lines "n", "p" and "c" (or "q") activate the matching
// control. An empty line means next.
func Simulate(ctx context.Context, opts SimulateOptions) (Result, error) {
	res := Result{LastIndex: domain.IndexBeforeStart}
	if opts.Document == nil {
		return res, fmt.Errorf("simulate: layout document is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Width <= 0 {
		opts.Width = tui.DefaultWidth
	}

	factory := memory.NewCalloutFactory()
	sched := clock.NewManual()

	track := observability.Combine(opts.Hooks, domain.LifecycleHooks{
		OnStepShown: func(_ context.Context, e *domain.StepEvent) {
			res.Shown = append(res.Shown, e.Index)
		},
		OnStepSkipped: func(_ context.Context, e *domain.StepEvent) {
			res.Skipped = append(res.Skipped, e.Index)
		},
		OnTourFinish: func(_ context.Context, e *domain.TourEvent) {
			res.Completed = e.Completed
			res.LastIndex = e.Index
		},
	})

	gopts := append([]waypoint.Option{
		waypoint.WithScheduler(sched),
		waypoint.WithLogger(opts.Logger),
		waypoint.WithLifecycleHooks(track),
	}, opts.Guide...)
	if opts.Store != nil {
		gopts = append(gopts, waypoint.WithStore(opts.Store))
	}

	guide, err := waypoint.New(opts.Document, factory, gopts...)
	if err != nil {
		return res, err
	}

	if !guide.StartTour(ctx, opts.Tour, opts.Force) {
		fmt.Fprintf(opts.Out, "Tour %q was not started (already completed or empty).\n", opts.Tour.ID)
		return res, nil
	}
	res.Started = true

	lines, stop := readLines(opts.In)
	defer stop()

	render := tui.NewRenderer(opts.Tour.Theme, opts.Width-4)

	for {
		sched.Drain(drainLimit)

		snap := guide.Snapshot()
		if !snap.Active {
			fmt.Fprintln(opts.Out, tui.Status(true, "Tour finished."))
			return res, nil
		}

		callout := current(factory)
		if callout == nil {
			guide.Finish(ctx)
			return res, fmt.Errorf("simulate: no callout shown for step %d", snap.CurrentIndex)
		}
		st := callout.State()

		body, rerr := render(st.Content.Text)
		if rerr != nil {
			opts.Logger.Debug("Markdown render failed", "err", rerr)
		}
		fmt.Fprint(opts.Out, tui.RenderFrame(tui.Frame{
			Index:    snap.CurrentIndex,
			Total:    len(snap.Steps),
			Selector: snap.Steps[snap.CurrentIndex].Selector,
			Body:     body,
			Placement: domain.Placement{
				Side:        st.Side,
				Top:         st.Top,
				Left:        st.Left,
				ArrowOffset: st.ArrowOffset,
			},
			Controls: st.Content.Controls,
			Theme:    st.Theme,
		}, opts.Width))

		ctl, ok, err := nextControl(ctx, opts.Auto, st.Content, lines)
		if err != nil {
			guide.Finish(context.WithoutCancel(ctx))
			return res, err
		}
		if !ok {
			guide.Finish(ctx)
			continue
		}
		if err := callout.Activate(ctl); err != nil {
			fmt.Fprintln(opts.Out, tui.Status(false, err.Error()))
		}
	}
}

func current(f *memory.CalloutFactory) *memory.Callout {
	visible := f.Visible()
	if len(visible) == 0 {
		return nil
	}
	return visible[len(visible)-1]
}

// nextControl picks the control to activate. ok is false when input ended.
func nextControl(ctx context.Context, auto bool, content domain.CalloutContent, lines <-chan string) (domain.ControlID, bool, error) {
	if auto {
		if content.HasControl(domain.ControlNext) {
			return domain.ControlNext, true, nil
		}
		return domain.ControlClose, true, nil
	}

	for {
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case line, open := <-lines:
			if !open {
				return "", false, nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "n", "next", "":
				return domain.ControlNext, true, nil
			case "p", "prev", "previous":
				return domain.ControlPrevious, true, nil
			case "c", "q", "close", "quit":
				return domain.ControlClose, true, nil
			}
		}
	}
}

// readLines pumps r line by line until stop is called or r is exhausted.
func readLines(r io.Reader) (<-chan string, func()) {
	ch := make(chan string)
	done := make(chan struct{})
	if r == nil {
		close(ch)
		return ch, func() { close(done) }
	}

	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return ch, func() { close(done) }
}
