package router

import (
	"github.com/babyGialo/sigmabot/core/logger"
	tg "github.com/babyGialo/sigmabot/core/telegram"
	"github.com/babyGialo/sigmabot/core/telegram/middleware"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
	// Observe runs before every command handler, including ones that are
	// later rejected by the admin gate.
	Observe tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
// The admin gate wraps inside the observe hook so rejected attempts are
// still recorded.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		if opts.Observe != nil {
			h = withObserve(opts.Observe, h)
		}
		h = middleware.LoggerMiddleware(h)
		h = middleware.RecoverMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}

func withObserve(observe, next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = observe(c)
		return next(c)
	}
}
