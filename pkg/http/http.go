package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

/**
 * http server lifecycle and configuration
 */

type Http struct {
	Host            string
	Port            int
	ContextPath     string
	PublicPath      string
	AccessLog       bool
	ExposeMetrics   bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	Auth            Auth
}

type Auth struct {
	// 共享管理员凭据（单一账号）
	AdminUser        string
	AdminPassHash    string // bcrypt hash
	SecretKey        string
	AccessExpire     int // 分钟
	SessionKeyPrefix string
}

// NewFiberApp 创建带超时配置的 fiber 应用
func NewFiberApp(cfg Http) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(cfg.IdleTimeout) * time.Second,
		DisableStartupMessage: true,
	})
}

// NewHttp 启动 http 服务，返回清理函数
func NewHttp(cfg Http, app *fiber.App) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	go func() {
		fmt.Printf("[Init] http server start at: %s\n", addr)
		if err := app.Listen(addr); err != nil {
			fmt.Printf("[Error] http server listen: %v\n", err)
		}
	}()

	return func() {
		timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			fmt.Printf("[Error] http server shutdown: %v\n", err)
		}
	}
}
