package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const tooManyAttemptsMessage = "Too Many Attempts."

// LoginRateLimiter allows max requests per window per client IP. A nil
// storage keeps counters in process memory.
func LoginRateLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			return "login:" + ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{Message: tooManyAttemptsMessage})
		},
		Storage: storage,
	})
}
