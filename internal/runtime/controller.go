package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/clock"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/google/uuid"
)

// Controller drives a single tour session: it sequences steps, skips targets
// that are absent or hidden, and owns the one callout on screen.
//
// Every entry point (public methods, control callbacks and scheduler
// callbacks) runs under mu, so session state is only ever touched by one
// caller at a time.
type Controller struct {
	mu sync.Mutex

	env     ports.Environment
	factory ports.CalloutFactory
	store   ports.CompletionStore
	sched   ports.Scheduler
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	newID   func() string

	offset  float64
	margin  float64
	fadeOut time.Duration
	settle  time.Duration

	session domain.Session
	// ctx backs callbacks that fire outside any caller's context.
	ctx context.Context
	// gen changes whenever the shown step changes; deferred work carries the
	// generation it was scheduled for and is dropped when it no longer matches.
	gen uint64

	current        ports.Callout
	pendingDestroy ports.Callout
	destroyTimer   ports.Timer
	settleTimer    ports.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore sets the completion store. Defaults to an in-memory store.
func WithStore(store ports.CompletionStore) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithScheduler sets the scheduler. Defaults to the wall clock.
func WithScheduler(s ports.Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithOffset sets the gap between target and callout.
func WithOffset(px float64) Option {
	return func(c *Controller) {
		c.offset = px
	}
}

// WithMargin sets the minimum distance between callout and viewport edges.
func WithMargin(px float64) Option {
	return func(c *Controller) {
		c.margin = px
	}
}

// WithFadeOutDelay sets how long a dismissed callout lingers before removal.
func WithFadeOutDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.fadeOut = d
	}
}

// WithScrollSettleDelay sets the wait between a scroll request and rendering.
func WithScrollSettleDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.settle = d
	}
}

// WithIDGenerator overrides how session IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// NewController creates a controller bound to a host environment and a
// callout factory.
func NewController(env ports.Environment, factory ports.CalloutFactory, opts ...Option) *Controller {
	c := &Controller{
		env:     env,
		factory: factory,
		store:   memory.NewStore(),
		sched:   clock.NewReal(),
		logger:  logging.NewNop(),
		newID:   uuid.NewString,
		offset:  domain.DefaultOffset,
		margin:  domain.DefaultMargin,
		fadeOut: domain.FadeOutDelay,
		settle:  domain.ScrollSettleDelay,
		session: domain.NewSession(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartConfig carries the optional arguments of Start.
type StartConfig struct {
	// TourID enables completion tracking. Empty means anonymous.
	TourID string
	// Force starts the tour even if it was completed before.
	Force bool
	// Theme is normalized: anything but "light" is dark.
	Theme domain.Theme
	// AutoScroll scrolls each target into view before showing its callout.
	AutoScroll bool
}

// Start begins a tour over steps. It never fails loudly: an empty step list
// or an already completed tour is logged and ignored. It reports whether a
// session was activated; the session may still end at once if no step has a
// visible target.
//
// A session that is already running is finished first.
func (c *Controller) Start(ctx context.Context, steps []domain.Step, cfg StartConfig) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(steps) == 0 {
		c.logger.Warn("No steps provided for the wizard")
		return false
	}

	if cfg.TourID != "" && !cfg.Force {
		done, err := c.isCompleted(ctx, cfg.TourID)
		if err != nil {
			c.logger.Warn("Failed to read completion flag, starting anyway", "tour", cfg.TourID, "err", err)
		}
		if done {
			c.logger.Info("Wizard already completed, skipping", "tour", cfg.TourID)
			return false
		}
	}

	if c.session.Active {
		c.log().Info("Replacing active tour")
		c.finishLocked(ctx)
	}

	c.ctx = context.WithoutCancel(ctx)
	c.session = domain.Session{
		ID:           c.newID(),
		Steps:        domain.CopySteps(steps),
		CurrentIndex: 0,
		Active:       true,
		TourID:       cfg.TourID,
		Theme:        cfg.Theme.Normalize(),
		AutoScroll:   cfg.AutoScroll,
	}

	c.log().Debug("Tour started", "steps", len(steps), "theme", c.session.Theme, "auto_scroll", cfg.AutoScroll)
	c.emitTourStart(ctx)

	c.session.CurrentIndex = c.scanForward(ctx, 0)
	c.showCurrentLocked(ctx)
	return true
}

// Finish ends the tour: the callout fades out, the completion flag is written
// for identified tours and the session is reset. Calling it without an
// active tour only repeats the reset.
func (c *Controller) Finish(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishLocked(ctx)
}

// Next moves to the next step with a visible target, finishing the tour
// when there is none.
func (c *Controller) Next(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextLocked(ctx)
}

// Previous moves to the previous step with a visible target, finishing the
// tour when there is none.
func (c *Controller) Previous(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prevLocked(ctx)
}

// Snapshot returns a copy of the session.
func (c *Controller) Snapshot() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// IsCompleted reports whether tourID has a completion flag.
func (c *Controller) IsCompleted(ctx context.Context, tourID string) (bool, error) {
	return c.isCompleted(ctx, tourID)
}

// Reset clears the completion flag of tourID so the tour starts again.
func (c *Controller) Reset(ctx context.Context, tourID string) error {
	return c.store.Set(ctx, domain.CompletionKey(tourID), "")
}

func (c *Controller) isCompleted(ctx context.Context, tourID string) (bool, error) {
	val, ok, err := c.store.Get(ctx, domain.CompletionKey(tourID))
	if err != nil {
		return false, err
	}
	return ok && val == domain.CompletionValue, nil
}

func (c *Controller) finishLocked(ctx context.Context) {
	wasActive := c.session.Active
	tourID := c.session.TourID
	index := c.session.CurrentIndex
	completed := wasActive && index >= len(c.session.Steps)
	if !c.session.InBounds(index) {
		index = domain.IndexBeforeStart
	}
	logger := c.log()

	c.session.Active = false
	c.gen++
	c.stopSettle()
	c.hideCurrentLocked(ctx)

	if tourID != "" {
		if err := c.store.Set(ctx, domain.CompletionKey(tourID), domain.CompletionValue); err != nil {
			logger.Warn("Failed to persist completion flag", "err", err)
		}
	}

	if wasActive {
		logger.Debug("Tour finished", "index", index, "completed", completed)
		c.emitTourFinish(ctx, index, completed)
	}

	c.session = domain.NewSession()
}

func (c *Controller) log() *slog.Logger {
	if c.session.ID == "" {
		return c.logger
	}
	return c.logger.With("session", c.session.ID, "tour", c.session.TourID)
}

func (c *Controller) stopSettle() {
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
}
