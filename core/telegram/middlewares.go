package telegram

import (
	"github.com/babyGialo/sigmabot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared global middleware chain: panic
// recovery first, then per-update receipt logging, then message metrics.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}
