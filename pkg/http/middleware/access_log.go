package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/logbase-dev/atsignal/pkg/log"
)

// AccessLogMiddleware 访问日志中间件
func AccessLogMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Infow("access",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"ip", c.IP(),
		"cost", time.Since(start).String(),
	)
	return err
}
