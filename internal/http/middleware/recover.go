package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recover turns a panic in a downstream handler into an error for the app's error
// handler, logging the panic value and stack.
func Recover(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Locals(RequestIDLocalKey).(string)
				log.Error("panic recovered",
					zap.String("request_id", rid),
					zap.String("path", c.Path()),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return c.Next()
	}
}
