package providers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/colorhash/internal/api"
	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/internal/ratelimit"
)

// RateLimiterHandle wraps the per-client limiter with Shutdownable.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRateLimiter provides the per-client API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	log.Info("Rate limiter started",
		"rps", cfg.RateLimit.RPS,
		"burst", cfg.RateLimit.Burst,
	)

	return &RateLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	listener net.Listener
}

// Addr returns the address the server is listening on.
func (h *HTTPServerHandle) Addr() string {
	return h.listener.Addr().String()
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server. The listener is bound before
// returning so a busy port fails bootstrap instead of a background goroutine.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	deriver := do.MustInvoke[*color.Deriver](i)
	limiter := do.MustInvoke[*RateLimiterHandle](i)

	handler := api.NewServer(deriver, api.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Limiter:     limiter.KeyedRateLimiter,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}

	// Start in background
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", ln.Addr().String())

	return &HTTPServerHandle{Server: srv, listener: ln}, nil
}
