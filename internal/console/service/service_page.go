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
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/id"
	"github.com/logbase-dev/atsignal/pkg/parallel"
	"github.com/logbase-dev/atsignal/pkg/storage"
)

// previewKeyPrefix 预览令牌在 Redis 中的 key 前缀
const previewKeyPrefix = "atsignal:preview:"

// PageView 管理列表/详情视图，附带派生的待发布状态
type PageView struct {
	model.Page
	PendingDraft bool `json:"pendingDraft"`
}

// PageService 页面编辑器：编辑上下文、草稿保存、发布与删除。
type PageService struct {
	appCtx  *ctx.Context
	pages   repo.IPageRepository
	menus   repo.IMenuRepository
	store   storage.StorageProvider
	preview Preview
}

func NewPageService(appCtx *ctx.Context, pages repo.IPageRepository, menus repo.IMenuRepository,
	store storage.StorageProvider, preview Preview) *PageService {
	return &PageService{appCtx: appCtx, pages: pages, menus: menus, store: store, preview: preview}
}

// List 站点全部页面
func (s *PageService) List(site string) ([]PageView, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	pages, err := s.pages.ListPages(site)
	if err != nil {
		return nil, err
	}
	views := make([]PageView, 0, len(pages))
	for i := range pages {
		views = append(views, PageView{Page: pages[i], PendingDraft: pages[i].HasPendingDraft()})
	}
	return views, nil
}

// Get 页面详情
func (s *PageService) Get(pageId string) (*PageView, error) {
	page, err := s.pages.GetPage(pageId)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}
	return &PageView{Page: *page, PendingDraft: page.HasPendingDraft()}, nil
}

// EditorContext 编辑器加载上下文：页面本身（可为空，表示新建）加上
// 可绑定的菜单下拉项。links 类型以及已被其他页面绑定的菜单不出现在
// 下拉项中；编辑已有页面时其当前菜单保留。
func (s *PageService) EditorContext(site, pageId string) (*model.EditorContext, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}

	var page *model.Page
	if pageId != "" {
		var err error
		page, err = s.pages.GetPage(pageId)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return nil, ErrNotFound
		}
	}

	menus, err := s.menus.ListMenus(site)
	if err != nil {
		return nil, err
	}
	pages, err := s.pages.ListPages(site)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(pages))
	for i := range pages {
		taken[pages[i].MenuId] = true
	}

	options := make([]model.MenuOption, 0, len(menus))
	for i := range menus {
		m := &menus[i]
		if m.PageType == model.PageTypeLinks {
			continue
		}
		if taken[m.MenuId] && (page == nil || page.MenuId != m.MenuId) {
			continue
		}
		options = append(options, model.MenuOption{
			MenuId: m.MenuId,
			Label:  m.Labels[model.PrimaryLocale],
			Path:   m.Path,
			Depth:  m.Depth,
		})
	}
	return &model.EditorContext{Page: page, MenuOptions: options}, nil
}

// SaveDraft 保存草稿。pageId 为空时新建页面，live 字段保持为空，
// 页面在发布前不对公开站点可见。slug 总是镜像所绑定菜单的 path。
func (s *PageService) SaveDraft(site, pageId string, d model.PageDraft) (string, error) {
	if err := s.validateDraft(site, pageId, &d); err != nil {
		return "", err
	}
	return s.pages.SaveDraft(site, d, pageId)
}

// Publish 发布页面。先经过与 SaveDraft 相同的校验，然后由存储层把
// 载荷同时写入 draft 与 live 字段并打同一时间戳——发布动作隐含一次
// 草稿保存。新页面允许直接发布。发布后失效公开缓存。
func (s *PageService) Publish(site, pageId string, d model.PageDraft) (string, error) {
	if err := s.validateDraft(site, pageId, &d); err != nil {
		return "", err
	}
	if pageId == "" {
		var err error
		pageId, err = s.pages.SaveDraft(site, d, "")
		if err != nil {
			return "", err
		}
	}
	if err := s.pages.Publish(pageId, d); err != nil {
		return "", err
	}
	s.invalidatePublicCache(site, d.Slug)
	return pageId, nil
}

// Delete 删除页面。先对 draft 与 live 内容里引用的图片做尽力而为的
// 清理（所有尺寸变体，失败只记日志），之后才删除页面记录——记录
// 一旦删除，内容里的图片引用就再也找不回来了。
func (s *PageService) Delete(pageId string) error {
	page, err := s.pages.GetPage(pageId)
	if err != nil {
		return err
	}
	if page == nil {
		return ErrNotFound
	}

	group := parallel.GoGroup(s.appCtx.GetCtx())
	for _, fileName := range referencedImages(page.ContentDraft, page.ContentLive) {
		for _, variant := range storage.ImageVariants {
			objectName := storage.ImagePath(variant, fileName)
			group.Go(func(context.Context) error {
				if err := s.store.Delete(s.appCtx, objectName); err != nil {
					s.appCtx.Log.Warnf("cleanup image %s: %v", objectName, err)
				}
				// 清理是尽力而为的，失败不阻断删除
				return nil
			})
		}
	}
	_ = group.Wait()
	if slug := page.Slug; slug != "" {
		s.invalidatePublicCache(page.Site, slug)
	}
	return s.pages.DeletePage(pageId)
}

// PreviewURL 生成草稿预览链接。令牌是一次性的 ULID，带 TTL 存入
// Redis，公开端用共享密钥加令牌换取草稿内容。
func (s *PageService) PreviewURL(site, pageId string) (string, error) {
	page, err := s.pages.GetPage(pageId)
	if err != nil {
		return "", err
	}
	if page == nil || page.Site != site {
		return "", ErrNotFound
	}

	token := id.GetUlid()
	ttl := time.Duration(s.preview.TokenTTL) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if err := s.appCtx.GetRedis().Set(s.appCtx.GetCtx(), previewKeyPrefix+token, pageId, ttl).Err(); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("secret", s.preview.Secret)
	q.Set("draftId", token)
	q.Set("locale", model.PrimaryLocale)
	return fmt.Sprintf("%s/pub/%s/preview?%s", strings.TrimSuffix(s.preview.BaseURL, "/"), site, q.Encode()), nil
}

// validateDraft 草稿载荷校验；slug 由绑定菜单的 path 覆写
func (s *PageService) validateDraft(site, pageId string, d *model.PageDraft) error {
	if !model.IsValidSite(site) {
		return invalidf("unknown site: %s", site)
	}
	if d.MenuId == "" {
		return invalidf("menuId is required")
	}
	if strings.TrimSpace(d.Labels[model.PrimaryLocale]) == "" {
		return invalidf("label for primary locale %q is required", model.PrimaryLocale)
	}
	if d.SaveFormat != "" && d.SaveFormat != model.SaveFormatMarkdown && d.SaveFormat != model.SaveFormatHTML {
		return invalidf("unknown save format: %s", d.SaveFormat)
	}

	menu, err := s.menus.GetMenu(d.MenuId)
	if err != nil {
		return err
	}
	if menu == nil || menu.Site != site {
		return invalidf("menu %s not found in site %s", d.MenuId, site)
	}
	if menu.PageType == model.PageTypeLinks {
		return invalidf("links menus cannot hold a page")
	}

	// 每个菜单至多绑定一个页面
	bound, err := s.pages.ListPagesByMenu(d.MenuId)
	if err != nil {
		return err
	}
	for i := range bound {
		if bound[i].PageId != pageId {
			return preconditionf("menu %s is already bound to page %s", d.MenuId, bound[i].PageId)
		}
	}

	d.Slug = menu.Path
	return nil
}

func (s *PageService) invalidatePublicCache(site, slug string) {
	keys := make([]string, 0, len(model.Locales))
	for _, locale := range model.Locales {
		keys = append(keys, publicPageCacheKey(site, slug, locale))
	}
	if err := s.appCtx.GetRedis().Del(context.Background(), keys...).Err(); err != nil {
		s.appCtx.Log.Warnf("invalidate public cache for %s/%s: %v", site, slug, err)
	}
}
