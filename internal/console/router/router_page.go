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

func (rt *Router) pageRouter(r fiber.Router, auth fiber.Handler) {
	pageGroup := r.Group("/pages")
	{
		// 站点页面列表
		pageGroup.Get("/:site", auth, rt.listPages)

		// 编辑器上下文（菜单绑定下拉项；pageId 为空表示新建）
		pageGroup.Get("/:site/editor-context", auth, rt.editorContext)

		// 页面详情
		pageGroup.Get("/:site/:pageId", auth, rt.getPage)

		// 保存草稿
		pageGroup.Post("/:site/draft", auth, rt.saveDraft)
		pageGroup.Put("/:site/:pageId/draft", auth, rt.saveDraftExisting)

		// 发布
		pageGroup.Post("/:site/publish", auth, rt.publishPage)
		pageGroup.Put("/:site/:pageId/publish", auth, rt.publishExisting)

		// 预览链接
		pageGroup.Post("/:site/:pageId/preview", auth, rt.previewPage)

		// 删除页面
		pageGroup.Delete("/:site/:pageId", auth, rt.deletePage)
	}
}

// listPages 站点页面列表，附带待发布状态
func (rt *Router) listPages(c *fiber.Ctx) error {
	pages, err := rt.Svc.Page.List(c.Params("site"))
	if err != nil {
		log.Errorf("list pages failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, pages)
	return nil
}

// getPage 页面详情
func (rt *Router) getPage(c *fiber.Ctx) error {
	page, err := rt.Svc.Page.Get(c.Params("pageId"))
	if err != nil {
		log.Errorf("get page failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, page)
	return nil
}

// editorContext 编辑器加载上下文；query 参数 pageId 可选
func (rt *Router) editorContext(c *fiber.Ctx) error {
	ec, err := rt.Svc.Page.EditorContext(c.Params("site"), c.Query("pageId"))
	if err != nil {
		log.Errorf("load editor context failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, ec)
	return nil
}

// saveDraft 新建页面并保存草稿
func (rt *Router) saveDraft(c *fiber.Ctx) error {
	return rt.doSaveDraft(c, "")
}

// saveDraftExisting 已有页面保存草稿
func (rt *Router) saveDraftExisting(c *fiber.Ctx) error {
	return rt.doSaveDraft(c, c.Params("pageId"))
}

func (rt *Router) doSaveDraft(c *fiber.Ctx, pageId string) error {
	var req model.PageDraft
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("save draft parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	id, err := rt.Svc.Page.SaveDraft(c.Params("site"), pageId, req)
	if err != nil {
		log.Errorf("save draft failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"pageId": id})
	return nil
}

// publishPage 新建页面并直接发布
func (rt *Router) publishPage(c *fiber.Ctx) error {
	return rt.doPublish(c, "")
}

// publishExisting 发布已有页面
func (rt *Router) publishExisting(c *fiber.Ctx) error {
	return rt.doPublish(c, c.Params("pageId"))
}

func (rt *Router) doPublish(c *fiber.Ctx, pageId string) error {
	var req model.PageDraft
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("publish parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	id, err := rt.Svc.Page.Publish(c.Params("site"), pageId, req)
	if err != nil {
		log.Errorf("publish page failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"pageId": id})
	return nil
}

// previewPage 生成草稿预览链接
func (rt *Router) previewPage(c *fiber.Ctx) error {
	url, err := rt.Svc.Page.PreviewURL(c.Params("site"), c.Params("pageId"))
	if err != nil {
		log.Errorf("build preview url failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"previewUrl": url})
	return nil
}

// deletePage 删除页面，先清理引用的图片
func (rt *Router) deletePage(c *fiber.Ctx) error {
	if err := rt.Svc.Page.Delete(c.Params("pageId")); err != nil {
		log.Errorf("delete page failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "delete page")
	return nil
}
