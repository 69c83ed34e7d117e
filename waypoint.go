package waypoint

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/runtime"
	loamAdapter "github.com/aretw0/waypoint/pkg/adapters/loam"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Guide is the high-level entry point of the library. It wraps the tour
// controller and resolves tours by ID through an optional loader.
type Guide struct {
	ctl     *runtime.Controller
	loader  ports.TourLoader
	logger  *slog.Logger
	rtOpts  []runtime.Option
	toursAt string
}

// Option configures a Guide.
type Option func(*Guide)

// WithStore persists completion flags in store instead of process memory.
func WithStore(store ports.CompletionStore) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithStore(store))
	}
}

// WithScheduler replaces the wall clock, e.g. with clock.Manual in tests.
func WithScheduler(s ports.Scheduler) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithScheduler(s))
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guide) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithOffset sets the gap between target and callout (default 8px).
func WithOffset(px float64) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithOffset(px))
	}
}

// WithMargin sets the minimum distance to the viewport edges (default 8px).
func WithMargin(px float64) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithMargin(px))
	}
}

// WithFadeOutDelay overrides the 200ms fade-out before a callout is removed.
func WithFadeOutDelay(d time.Duration) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithFadeOutDelay(d))
	}
}

// WithScrollSettleDelay overrides the 300ms wait after scrolling.
func WithScrollSettleDelay(d time.Duration) Option {
	return func(g *Guide) {
		g.rtOpts = append(g.rtOpts, runtime.WithScrollSettleDelay(d))
	}
}

// WithLoader injects a TourLoader used by StartByID.
func WithLoader(l ports.TourLoader) Option {
	return func(g *Guide) {
		g.loader = l
	}
}

// WithTourDir loads tours from a Loam repository at path.
func WithTourDir(path string) Option {
	return func(g *Guide) {
		g.toursAt = path
	}
}

// New creates a Guide bound to a host environment and a callout factory.
func New(env ports.Environment, factory ports.CalloutFactory, opts ...Option) (*Guide, error) {
	if env == nil || factory == nil {
		return nil, fmt.Errorf("waypoint: environment and callout factory are required")
	}

	g := &Guide{}
	for _, opt := range opts {
		opt(g)
	}

	if g.loader == nil && g.toursAt != "" {
		loader, err := OpenTours(g.toursAt)
		if err != nil {
			return nil, err
		}
		g.loader = loader
	}

	if g.logger == nil {
		g.logger = logging.NewNop()
	}

	rtOpts := append([]runtime.Option{runtime.WithLogger(g.logger)}, g.rtOpts...)
	g.ctl = runtime.NewController(env, factory, rtOpts...)
	return g, nil
}

// OpenTours opens a read-only Loam repository of tour documents.
func OpenTours(path string) (*loamAdapter.Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Tours are only read; strict mode keeps numbers consistent across formats.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.TourMetadata](repo)), nil
}

// StartOption configures a single Start call.
type StartOption func(*runtime.StartConfig)

// WithTourID enables completion tracking under id.
func WithTourID(id string) StartOption {
	return func(c *runtime.StartConfig) {
		c.TourID = id
	}
}

// WithForceStart starts the tour even if it was completed before.
func WithForceStart(force bool) StartOption {
	return func(c *runtime.StartConfig) {
		c.Force = force
	}
}

// WithTheme selects the callout theme. Anything other than "light" is dark.
func WithTheme(theme string) StartOption {
	return func(c *runtime.StartConfig) {
		c.Theme = domain.ParseTheme(theme)
	}
}

// WithAutoScroll scrolls each target into view before showing its callout.
func WithAutoScroll(enabled bool) StartOption {
	return func(c *runtime.StartConfig) {
		c.AutoScroll = enabled
	}
}

// Start begins a tour over steps and reports whether it was activated.
// It returns false for an empty step list and for a completed tour that was
// not forced.
func (g *Guide) Start(ctx context.Context, steps []domain.Step, opts ...StartOption) bool {
	cfg := runtime.StartConfig{Theme: domain.ThemeDark}
	for _, opt := range opts {
		opt(&cfg)
	}
	return g.ctl.Start(ctx, steps, cfg)
}

// StartTour starts a tour definition, using its ID, theme and auto-scroll
// settings.
func (g *Guide) StartTour(ctx context.Context, tour domain.Tour, force bool) bool {
	return g.Start(ctx, tour.Steps,
		WithTourID(tour.ID),
		WithForceStart(force),
		WithTheme(string(tour.Theme)),
		WithAutoScroll(tour.AutoScroll),
	)
}

// StartByID loads a tour through the configured loader and starts it.
func (g *Guide) StartByID(ctx context.Context, id string, force bool) (bool, error) {
	if g.loader == nil {
		return false, fmt.Errorf("waypoint: no tour loader configured")
	}
	tour, err := g.loader.GetTour(id)
	if err != nil {
		return false, err
	}
	return g.StartTour(ctx, tour, force), nil
}

// Finish ends the active tour. Safe to call at any time.
func (g *Guide) Finish(ctx context.Context) {
	g.ctl.Finish(ctx)
}

// Next advances to the next visible step.
func (g *Guide) Next(ctx context.Context) {
	g.ctl.Next(ctx)
}

// Previous goes back to the previous visible step.
func (g *Guide) Previous(ctx context.Context) {
	g.ctl.Previous(ctx)
}

// Snapshot returns a copy of the current session.
func (g *Guide) Snapshot() domain.Session {
	return g.ctl.Snapshot()
}

// IsCompleted reports whether the tour was completed before.
func (g *Guide) IsCompleted(ctx context.Context, tourID string) (bool, error) {
	return g.ctl.IsCompleted(ctx, tourID)
}

// Reset clears a tour's completion flag.
func (g *Guide) Reset(ctx context.Context, tourID string) error {
	return g.ctl.Reset(ctx, tourID)
}

// Loader returns the tour loader, or nil when none is configured.
func (g *Guide) Loader() ports.TourLoader {
	return g.loader
}
