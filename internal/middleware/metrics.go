package middleware

import (
	"strconv"
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	"sanaalens/internal/observability"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the service.
// The collectors live in the default registry, so the middleware is a
// process-wide singleton no matter how many servers are constructed.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(service)
	})
	return prom
}

// MetricsMiddleware returns the request-metrics handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// Tracing wraps each request in a span carrying route and status.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		span, ctx := observability.NewSpan(c.UserContext(), c.Method()+" "+c.Path())
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()

		span.AddAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", c.Route().Path),
			attribute.String("http.status_code", strconv.Itoa(c.Response().StatusCode())),
		)
		if err != nil {
			span.SetError(err)
		}
		return err
	}
}
