package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-taskboard/taskboard/pkg/id"
)

// RequestIdHeader carries the per-request correlation id.
const RequestIdHeader = "X-Request-Id"

// RequestIdMiddleware assigns every request a k-sortable id unless the
// client already sent one, and echoes it on the response.
func RequestIdMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(RequestIdHeader)
		if requestId == "" {
			requestId = id.GetXid()
		}
		c.Locals(RequestIdHeader, requestId)
		c.Set(RequestIdHeader, requestId)
		return c.Next()
	}
}
