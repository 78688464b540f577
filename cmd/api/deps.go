package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/config"
	"github.com/spec-kit/admission-service/internal/observability"
)

// runtime bundles what every subcommand needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if cfg.Auth.UsingDefaultSecret {
		logger.Warn("using the built-in default JWT secret; set AUTH_JWT_SECRET before deploying")
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func (r *runtime) close() {
	_ = r.logger.Sync()
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
