package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/file"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/adapters/redis"
	"github.com/aretw0/waypoint/pkg/ports"
)

// NewLogger builds the CLI logger. Logs go to stderr so stdout stays clean
// for frames and JSON output.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, lvl), nil
}

// OpenStore builds the completion store selected by cfg. The returned close
// function is never nil.
func OpenStore(ctx context.Context, cfg config.Store) (ports.ListableStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), noop, nil
	case config.BackendFile, "":
		return file.New(cfg.Path), noop, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, err
		}
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// GuideOptions maps the callout section of the config to guide options.
func GuideOptions(c config.Callout) []waypoint.Option {
	var opts []waypoint.Option
	if c.Offset > 0 {
		opts = append(opts, waypoint.WithOffset(c.Offset))
	}
	if c.Margin > 0 {
		opts = append(opts, waypoint.WithMargin(c.Margin))
	}
	if c.FadeOut > 0 {
		opts = append(opts, waypoint.WithFadeOutDelay(c.FadeOut))
	}
	if c.ScrollSettle > 0 {
		opts = append(opts, waypoint.WithScrollSettleDelay(c.ScrollSettle))
	}
	return opts
}
