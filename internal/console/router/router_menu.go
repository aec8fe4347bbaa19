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

func (rt *Router) menuRouter(r fiber.Router, auth fiber.Handler) {
	menuGroup := r.Group("/menus")
	{
		// 站点菜单树
		menuGroup.Get("/:site", auth, rt.listMenus)

		// 创建菜单
		menuGroup.Post("/", auth, rt.createMenu)

		// 更新菜单
		menuGroup.Put("/:site/:menuId", auth, rt.updateMenu)

		// 删除菜单
		menuGroup.Delete("/:site/:menuId", auth, rt.deleteMenu)

		// 按语言启用/停用
		menuGroup.Post("/:site/:menuId/toggle", auth, rt.toggleMenu)

		// 拖拽移动
		menuGroup.Post("/drop", auth, rt.dropMenu)
	}
}

// listMenus 管理视图的菜单树
func (rt *Router) listMenus(c *fiber.Ctx) error {
	tree, err := rt.Svc.Menu.Tree(c.Params("site"))
	if err != nil {
		log.Errorf("list menus failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, tree)
	return nil
}

// createMenu 创建菜单
func (rt *Router) createMenu(c *fiber.Ctx) error {
	var req model.CreateMenuReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create menu parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	menuId, err := rt.Svc.Menu.Create(req)
	if err != nil {
		log.Errorf("create menu failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"menuId": menuId})
	return nil
}

// updateMenu 更新菜单；path 变更会级联绑定页面的 slug
func (rt *Router) updateMenu(c *fiber.Ctx) error {
	var req model.UpdateMenuReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update menu parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Menu.Update(c.Params("site"), c.Params("menuId"), req); err != nil {
		log.Errorf("update menu failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "update menu")
	return nil
}

// deleteMenu 删除菜单，连带绑定页面
func (rt *Router) deleteMenu(c *fiber.Ctx) error {
	if err := rt.Svc.Menu.Delete(c.Params("site"), c.Params("menuId")); err != nil {
		log.Errorf("delete menu failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "delete menu")
	return nil
}

// toggleMenu 按语言启用/停用菜单
func (rt *Router) toggleMenu(c *fiber.Ctx) error {
	var req model.ToggleMenuReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("toggle menu parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Menu.Toggle(c.Params("site"), c.Params("menuId"), req); err != nil {
		log.Errorf("toggle menu failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "toggle menu")
	return nil
}

// dropMenu 拖拽移动菜单
func (rt *Router) dropMenu(c *fiber.Ctx) error {
	var req model.DropMenuReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("drop menu parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Menu.Drop(req); err != nil {
		log.Errorf("drop menu failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "drop menu")
	return nil
}
