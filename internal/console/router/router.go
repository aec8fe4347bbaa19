// Copyright 2025 Logbase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"errors"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logbase-dev/atsignal/internal/console/service"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/database"
	httpx "github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/version"
)

// ProviderSet 提供 router 相关的依赖
var ProviderSet = wire.NewSet(NewRouter)

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context
	Svc  *service.Services
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, svc *service.Services) *Router {
	return &Router{
		Http: httpConf,
		Ctx:  appCtx,
		Svc:  svc,
	}
}

// Register 注册全部路由与中间件
func (rt *Router) Register(app *fiber.App) {

	// cors
	app.Use(middleware.CorsMiddleware())

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware)
	}

	// unified response
	app.Use(middleware.UnifiedRespMiddleware())

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.SessionKeyPrefix, rt.Ctx.GetRedis())

	// 管理控制台 api
	api := app.Group(rt.Http.ContextPath)
	{
		rt.authRouter(api, auth)
		rt.menuRouter(api, auth)
		rt.pageRouter(api, auth)
		rt.faqRouter(api, auth)
		rt.postRouter(api, auth)
		rt.uploadRouter(api, auth)
		rt.newsletterRouter(api)
	}

	// 公开渲染端 api，无需认证
	pub := app.Group(rt.Http.PublicPath)
	{
		rt.publicRouter(pub)
	}
}

// repErr 统一的错误映射：校验 → BadRequest，前置条件 → Forbidden，
// 不存在 → NotFound，存储超时 → StoreTimeout，其余 → Failed
func repErr(c *fiber.Ctx, err error) error {
	switch {
	case service.IsValidation(err):
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, err.Error(), c.Path())
	case service.IsPrecondition(err):
		return httpx.WithRepErrMsg(c, httpx.Forbidden.Code, err.Error(), c.Path())
	case errors.Is(err, service.ErrNotFound):
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, httpx.NotFound.Msg, c.Path())
	case errors.Is(err, service.ErrPreviewSecret):
		return httpx.WithRepErrMsg(c, httpx.PreviewSecretIncorrect.Code, httpx.PreviewSecretIncorrect.Msg, c.Path())
	case database.IsTimeout(err):
		return httpx.WithRepErrMsg(c, httpx.StoreTimeout.Code, httpx.StoreTimeout.Msg, c.Path())
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
	}
}
