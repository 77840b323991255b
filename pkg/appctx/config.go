// Package appctx carries process-wide state on a cobra command context.
package appctx

import (
	"context"

	"github.com/oddeye/oddeye/pkg/config"
)

type key string

const configKey key = "oddeye.config.manager"

// WithConfig stores the loaded config manager on ctx.
func WithConfig(ctx context.Context, manager *config.Manager) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey, manager)
}

// Config retrieves the config manager stored by WithConfig.
func Config(ctx context.Context) (*config.Manager, bool) {
	if ctx == nil {
		return nil, false
	}
	mgr, ok := ctx.Value(configKey).(*config.Manager)
	return mgr, ok && mgr != nil
}
