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
	"github.com/gofiber/fiber/v2"

	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/log"
)

// newsletterRouter 订阅入口来自公开站点表单，不做认证
func (rt *Router) newsletterRouter(r fiber.Router) {
	newsGroup := r.Group("/newsletter")
	{
		newsGroup.Post("/subscribe", rt.subscribeNewsletter)
	}
}

type subscribeReq struct {
	Email string `json:"email"`
}

// subscribeNewsletter 校验并转发到邮件列表提供方
func (rt *Router) subscribeNewsletter(c *fiber.Ctx) error {
	var req subscribeReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("subscribe parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Newsletter.Subscribe(c.UserContext(), req.Email); err != nil {
		log.Errorf("subscribe failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "subscribe")
	return nil
}
