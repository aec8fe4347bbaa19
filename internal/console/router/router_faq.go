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

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/log"
)

func (rt *Router) faqRouter(r fiber.Router, auth fiber.Handler) {
	faqGroup := r.Group("/faqs")
	{
		faqGroup.Get("/:site", auth, rt.listFaqs)
		faqGroup.Post("/", auth, rt.createFaq)
		faqGroup.Put("/:faqId", auth, rt.updateFaq)
		faqGroup.Delete("/:faqId", auth, rt.deleteFaq)
	}
}

func (rt *Router) listFaqs(c *fiber.Ctx) error {
	faqs, err := rt.Svc.Faq.List(c.Params("site"))
	if err != nil {
		log.Errorf("list faqs failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, faqs)
	return nil
}

func (rt *Router) createFaq(c *fiber.Ctx) error {
	var req model.FaqReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create faq parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	faqId, err := rt.Svc.Faq.Create(req)
	if err != nil {
		log.Errorf("create faq failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"faqId": faqId})
	return nil
}

func (rt *Router) updateFaq(c *fiber.Ctx) error {
	var req model.FaqReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update faq parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Faq.Update(c.Params("faqId"), req); err != nil {
		log.Errorf("update faq failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "update faq")
	return nil
}

func (rt *Router) deleteFaq(c *fiber.Ctx) error {
	if err := rt.Svc.Faq.Delete(c.Params("faqId")); err != nil {
		log.Errorf("delete faq failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "delete faq")
	return nil
}
