// Package di provides dependency injection configuration for the color hash server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/di/providers"
	"github.com/listenupapp/colorhash/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments, without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Colors
	do.Provide(injector, providers.ProvideDeriver)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*color.Deriver](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
