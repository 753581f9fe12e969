package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggerMiddleware logs HTTP requests and responses
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.Printf("[%s] %s - Completed in %v with status %d",
			c.Method(),
			c.Path(),
			time.Since(start),
			c.Response().StatusCode(),
		)

		return err
	}
}
