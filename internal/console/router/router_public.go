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
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/log"
)

// publicRouter 公开渲染端路由，全部只读，无需认证
func (rt *Router) publicRouter(r fiber.Router) {
	// 博客
	r.Get("/posts", rt.pubPosts)
	r.Get("/posts/:slug", rt.pubPostBySlug)

	// 站点维度
	r.Get("/:site/menus", rt.pubMenus)
	r.Get("/:site/page", rt.pubPage)
	r.Get("/:site/preview", rt.pubPreview)
	r.Get("/:site/faqs", rt.pubFaqs)
}

func localeOf(c *fiber.Ctx) string {
	locale := c.Query("locale")
	if locale == "" {
		locale = model.PrimaryLocale
	}
	return locale
}

// pubMenus 启用态菜单树
func (rt *Router) pubMenus(c *fiber.Ctx) error {
	tree, err := rt.Svc.Public.MenuTree(c.Params("site"), localeOf(c))
	if err != nil {
		log.Errorf("public menus failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, tree)
	return nil
}

// pubPage live 页面内容
func (rt *Router) pubPage(c *fiber.Ctx) error {
	page, err := rt.Svc.Public.Page(c.Params("site"), c.Query("slug"), localeOf(c))
	if err != nil {
		log.Errorf("public page failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, page)
	return nil
}

// pubPreview 草稿预览，共享密钥加一次性令牌
func (rt *Router) pubPreview(c *fiber.Ctx) error {
	page, err := rt.Svc.Public.Preview(c.Params("site"), c.Query("secret"), c.Query("draftId"), localeOf(c))
	if err != nil {
		log.Errorf("public preview failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, page)
	return nil
}

// pubPosts 已发布文章列表
func (rt *Router) pubPosts(c *fiber.Ctx) error {
	posts, err := rt.Svc.Public.Posts()
	if err != nil {
		log.Errorf("public posts failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, posts)
	return nil
}

// pubPostBySlug 单篇文章，body 渲染为 HTML
func (rt *Router) pubPostBySlug(c *fiber.Ctx) error {
	post, html, err := rt.Svc.Public.PostBySlug(c.Params("slug"), localeOf(c))
	if err != nil {
		log.Errorf("public post failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"post": post, "html": html})
	return nil
}

// pubFaqs 已发布 FAQ 列表
func (rt *Router) pubFaqs(c *fiber.Ctx) error {
	faqs, err := rt.Svc.Public.Faqs(c.Params("site"))
	if err != nil {
		log.Errorf("public faqs failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, faqs)
	return nil
}
