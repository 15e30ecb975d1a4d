package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"accessdesk/internal/domain"
)

// RequestContext returns a context carrying the caller's address and user
// agent so audited operations can record who acted from where.
func RequestContext(c *fiber.Ctx) context.Context {
	return domain.WithRequestMeta(c.Context(), domain.RequestMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
}
