package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/ryhazerus/nsapi"
	"github.com/ryhazerus/nsapi/internal/config"
	"github.com/ryhazerus/nsapi/store"
	usageredis "github.com/ryhazerus/nsapi/store/redis"
)

// app holds everything one command invocation needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	gate   *nsapi.Gate
	client *nsapi.Client
}

func newApp(ctx context.Context, cfg *config.Config, verbose bool) (*app, error) {
	logger, err := newLogger(cfg.Log.Level, verbose)
	if err != nil {
		return nil, err
	}

	usage, err := openUsageStore(ctx, cfg.Usage)
	if err != nil {
		logger.Sync() //nolint:errcheck
		return nil, err
	}
	window, err := nsapi.ParseWindow(cfg.Usage.Window)
	if err != nil {
		usage.Close()
		return nil, err
	}

	opts := []nsapi.Option{
		nsapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		nsapi.WithLogger(logger),
		nsapi.WithUsageStore(usage),
		nsapi.WithUsageWindow(window),
	}
	if cfg.Pacing.Rate > 0 {
		opts = append(opts, nsapi.WithPacing(rate.Limit(cfg.Pacing.Rate), cfg.Pacing.Burst))
	}

	gate, err := nsapi.NewGate(cfg.UserAgent, opts...)
	if err != nil {
		usage.Close()
		return nil, err
	}
	client, err := nsapi.NewClient(gate,
		nsapi.WithBaseURL(cfg.BaseURL),
		nsapi.WithAPIVersion(cfg.APIVersion),
		nsapi.WithClientLogger(logger),
	)
	if err != nil {
		gate.Close()
		return nil, err
	}

	logger.Debug("configured",
		zap.String("base_url", cfg.BaseURL),
		zap.String("usage_driver", cfg.Usage.Driver),
		zap.Stringer("usage_window", window),
	)
	return &app{cfg: cfg, logger: logger, gate: gate, client: client}, nil
}

func (a *app) Close() error {
	err := a.gate.Close()
	a.logger.Sync() //nolint:errcheck
	return err
}

// newLogger writes to stderr so command output stays clean on stdout.
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func openUsageStore(ctx context.Context, c config.UsageConfig) (store.Store, error) {
	switch c.Driver {
	case config.DriverSQLite:
		s, err := store.NewSQLiteStore(c.DSN)
		if err != nil {
			return nil, err
		}
		return store.NewTieredStore(s), nil
	case config.DriverRedis:
		s, err := usageredis.Open(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return store.NewMemoryStore(), nil
	}
}
