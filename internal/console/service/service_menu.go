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

package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/logbase-dev/atsignal/internal/console/menutree"
	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/parallel"
)

// pathPattern 路径段字符集；首尾斜杠与连续斜杠另行校验
var pathPattern = regexp.MustCompile(`^[a-z0-9\-_/]+$`)

// MenuService 菜单管理：树的物化、增删改、拖拽与按语言启停。
// 级联批量写是并发的且非事务的，部分失败不回滚（见 DESIGN.md）。
type MenuService struct {
	appCtx *ctx.Context
	menus  repo.IMenuRepository
	pages  repo.IPageRepository
	pgSvc  *PageService
}

func NewMenuService(appCtx *ctx.Context, menus repo.IMenuRepository, pages repo.IPageRepository, pgSvc *PageService) *MenuService {
	return &MenuService{appCtx: appCtx, menus: menus, pages: pages, pgSvc: pgSvc}
}

// Tree 管理视图的完整菜单树，不按启用状态过滤
func (s *MenuService) Tree(site string) ([]*menutree.Node, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	menus, err := s.menus.ListMenus(site)
	if err != nil {
		return nil, err
	}
	return menutree.BuildTree(menus), nil
}

// Create 新建菜单。order 缺省取同级最大 order+1，depth 由父节点派生。
func (s *MenuService) Create(req model.CreateMenuReq) (string, error) {
	if !model.IsValidSite(req.Site) {
		return "", invalidf("unknown site: %s", req.Site)
	}
	if strings.TrimSpace(req.Labels[model.PrimaryLocale]) == "" {
		return "", invalidf("label for primary locale %q is required", model.PrimaryLocale)
	}
	pageType := req.PageType
	if pageType == "" {
		pageType = model.PageTypeDynamic
	}
	if !model.IsValidPageType(pageType) {
		return "", invalidf("unknown page type: %s", req.PageType)
	}

	siblings, err := s.menus.ListMenus(req.Site)
	if err != nil {
		return "", err
	}
	if err := validatePath(req.Path, pageType, siblings, ""); err != nil {
		return "", err
	}

	depth := 1
	if req.ParentId != model.RootParentId {
		parent := findMenu(siblings, req.ParentId)
		if parent == nil {
			return "", invalidf("parent menu %s not found", req.ParentId)
		}
		depth = parent.Depth + 1
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		// 追加到同级末尾
		for i := range siblings {
			if siblings[i].ParentId == req.ParentId && siblings[i].Order >= order {
				order = siblings[i].Order + 1
			}
		}
		if order == 0 {
			order = 1
		}
	}

	menu := &model.Menu{
		Site:     req.Site,
		Labels:   req.Labels,
		Path:     req.Path,
		PageType: pageType,
		Depth:    depth,
		ParentId: req.ParentId,
		Order:    order,
		Enabled:  req.Enabled,
	}
	return s.menus.CreateMenu(menu)
}

// Update 更新菜单。path 变更时先把绑定页面的 slug 级联写入，再写菜单
// 本身——写序固定，页面 slug 永远不落后于菜单 path。
func (s *MenuService) Update(site, menuId string, req model.UpdateMenuReq) error {
	menu, err := s.menus.GetMenu(menuId)
	if err != nil {
		return err
	}
	if menu == nil || menu.Site != site {
		return ErrNotFound
	}
	if req.Labels != nil && strings.TrimSpace(req.Labels[model.PrimaryLocale]) == "" {
		return invalidf("label for primary locale %q is required", model.PrimaryLocale)
	}
	pageType := menu.PageType
	if req.PageType != nil {
		if !model.IsValidPageType(*req.PageType) {
			return invalidf("unknown page type: %s", *req.PageType)
		}
		pageType = *req.PageType
	}

	if req.Path != nil && *req.Path != menu.Path {
		all, err := s.menus.ListMenus(site)
		if err != nil {
			return err
		}
		if err := validatePath(*req.Path, pageType, all, menuId); err != nil {
			return err
		}
		// slug 级联先行
		if _, err := s.pages.UpdateSlugByMenu(menuId, *req.Path); err != nil {
			return err
		}
	}
	return s.menus.UpdateMenu(menuId, req)
}

// Delete 删除菜单。仍有子菜单时拒绝；绑定的页面随菜单一并删除
// （经由页面删除流程，图片清理先于记录删除）。
func (s *MenuService) Delete(site, menuId string) error {
	menu, err := s.menus.GetMenu(menuId)
	if err != nil {
		return err
	}
	if menu == nil || menu.Site != site {
		return ErrNotFound
	}

	// 两次独立读并发执行
	childrenF := parallel.Go(s.appCtx.GetCtx(), func(context.Context) (any, error) {
		return s.menus.CountChildren(menuId)
	})
	pagesF := parallel.Go(s.appCtx.GetCtx(), func(context.Context) (any, error) {
		return s.pages.ListPagesByMenu(menuId)
	})

	children, err := childrenF.Get()
	if err != nil {
		return err
	}
	if n := children.(int64); n > 0 {
		return preconditionf("menu has %d child menus, delete them first", n)
	}

	pagesRes, err := pagesF.Get()
	if err != nil {
		return err
	}
	bound := pagesRes.([]model.Page)
	for i := range bound {
		if err := s.pgSvc.Delete(bound[i].PageId); err != nil {
			return err
		}
	}
	return s.menus.DeleteMenu(menuId)
}

// Toggle 按语言启用/停用菜单。
//
// 启用时父级必须已在该语言启用；停用时并发级联停用全部后代，
// 共同等待，部分失败不回滚，首个错误上抛。
func (s *MenuService) Toggle(site, menuId string, req model.ToggleMenuReq) error {
	if !model.IsValidLocale(req.Locale) {
		return invalidf("unknown locale: %s", req.Locale)
	}
	menu, err := s.menus.GetMenu(menuId)
	if err != nil {
		return err
	}
	if menu == nil || menu.Site != site {
		return ErrNotFound
	}

	if req.Enabled && !menu.IsRoot() {
		parent, err := s.menus.GetMenu(menu.ParentId)
		if err != nil {
			return err
		}
		if parent == nil || !parent.EnabledFor(req.Locale) {
			return preconditionf("parent menu is disabled for locale %s", req.Locale)
		}
	}

	if err := s.menus.SetEnabled(menuId, req.Locale, req.Enabled); err != nil {
		return err
	}
	if req.Enabled {
		return nil
	}

	all, err := s.menus.ListMenus(site)
	if err != nil {
		return err
	}
	descendants := menutree.Descendants(all, menuId)
	if len(descendants) == 0 {
		return nil
	}
	group := parallel.GoGroup(s.appCtx.GetCtx())
	for id := range descendants {
		id := id
		group.Go(func(context.Context) error {
			return s.menus.SetEnabled(id, req.Locale, false)
		})
	}
	return group.Wait()
}

// Drop 拖拽移动菜单。
//
// 目标父级不能是自身或自身的后代（canDrop）。同父拖拽只重排 order；
// 跨父拖拽额外写 parent_id / depth 并紧凑化旧兄弟。全部增量并发落库，
// 共同等待，不回滚。
func (s *MenuService) Drop(req model.DropMenuReq) error {
	if !model.IsValidSite(req.Site) {
		return invalidf("unknown site: %s", req.Site)
	}
	if req.NewIndex < 0 {
		return invalidf("newIndex must not be negative")
	}
	menus, err := s.menus.ListMenus(req.Site)
	if err != nil {
		return err
	}
	moved := findMenu(menus, req.MenuId)
	if moved == nil {
		return ErrNotFound
	}
	if !s.canDrop(menus, req.MenuId, req.NewParentId) {
		return preconditionf("cannot move a menu into itself or its descendants")
	}

	var deltas []menutree.Delta
	if req.NewParentId == moved.ParentId {
		deltas = menutree.ReorderSiblings(menus, req.MenuId, req.NewIndex)
	} else {
		deltas = menutree.MoveToNewParent(menus, req.MenuId, req.NewParentId, req.NewIndex)
	}
	if deltas == nil {
		return invalidf("target parent %s not found", req.NewParentId)
	}

	group := parallel.GoGroup(s.appCtx.GetCtx())
	for _, d := range deltas {
		d := d
		group.Go(func(context.Context) error {
			return s.menus.ApplyDelta(d)
		})
	}
	return group.Wait()
}

// canDrop 目标父级不是自身、也不是自身的后代时允许拖入
func (s *MenuService) canDrop(menus []model.Menu, menuId, newParentId string) bool {
	if newParentId == model.RootParentId {
		return true
	}
	if newParentId == menuId {
		return false
	}
	return !menutree.Descendants(menus, menuId)[newParentId]
}

// validatePath 校验菜单 path。
// links 类型存完整外部 URL，不参与路径唯一性；其余类型为站内路径段，
// 同一站点内（排除 excludeId 与 links 类型）必须唯一。
func validatePath(path, pageType string, all []model.Menu, excludeId string) error {
	if path == "" {
		return invalidf("path is required")
	}
	if pageType == model.PageTypeLinks {
		if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
			return invalidf("links menu path must be an absolute http(s) URL")
		}
		return nil
	}
	if !pathPattern.MatchString(path) {
		return invalidf("path may only contain lowercase letters, digits, '-', '_' and '/'")
	}
	if strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") || strings.Contains(path, "//") {
		return invalidf("path must not have leading, trailing or doubled slashes")
	}
	for i := range all {
		if all[i].MenuId == excludeId || all[i].PageType == model.PageTypeLinks {
			continue
		}
		if all[i].Path == path {
			return invalidf("path %q is already used by menu %s", path, all[i].MenuId)
		}
	}
	return nil
}

func findMenu(menus []model.Menu, menuId string) *model.Menu {
	for i := range menus {
		if menus[i].MenuId == menuId {
			return &menus[i]
		}
	}
	return nil
}
