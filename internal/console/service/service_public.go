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
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/logbase-dev/atsignal/internal/console/menutree"
	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/markdown"
)

// ErrPreviewSecret 预览密钥不匹配
var ErrPreviewSecret = errors.New("preview secret incorrect")

// 公开页面缓存 TTL；发布与删除会主动失效，这里只兜底
const publicPageCacheTTL = 5 * time.Minute

func publicPageCacheKey(site, slug, locale string) string {
	return fmt.Sprintf("atsignal:pub:page:%s:%s:%s", site, slug, locale)
}

// PublicPage 渲染端消费的页面载荷
type PublicPage struct {
	Slug       string     `json:"slug"`
	Locale     string     `json:"locale"`
	Label      string     `json:"label"`
	Html       string     `json:"html"`
	SaveFormat string     `json:"saveFormat"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// PublicService 公开站点的只读后端：启用态菜单树、live 页面、
// 草稿预览、文章与 FAQ。live 页面经 Redis 缓存，缓存未命中时用
// singleflight 合并同 key 的并发回源。
type PublicService struct {
	appCtx  *ctx.Context
	repos   *repo.Repositories
	preview Preview
	sf      singleflight.Group
}

func NewPublicService(appCtx *ctx.Context, repos *repo.Repositories, preview Preview) *PublicService {
	return &PublicService{appCtx: appCtx, repos: repos, preview: preview}
}

// MenuTree 公开菜单树：只含指定语言启用的节点，停用节点整棵子树剪掉
func (s *PublicService) MenuTree(site, locale string) ([]*menutree.Node, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	if !model.IsValidLocale(locale) {
		return nil, invalidf("unknown locale: %s", locale)
	}
	menus, err := s.repos.Menu.ListMenus(site)
	if err != nil {
		return nil, err
	}
	return pruneDisabled(menutree.BuildTree(menus), locale), nil
}

// Page live 页面。markdown 内容渲染为 HTML；未发布过的页面视同不存在。
func (s *PublicService) Page(site, slug, locale string) (*PublicPage, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	if !model.IsValidLocale(locale) {
		return nil, invalidf("unknown locale: %s", locale)
	}

	key := publicPageCacheKey(site, slug, locale)
	raw, err := s.appCtx.GetRedis().Get(s.appCtx.GetCtx(), key).Result()
	if err == nil {
		var cached PublicPage
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.appCtx.Log.Warnf("public cache get %s: %v", key, err)
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.loadPage(site, slug, locale, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*PublicPage), nil
}

func (s *PublicService) loadPage(site, slug, locale, cacheKey string) (*PublicPage, error) {
	page, err := s.repos.Page.GetPageBySlug(site, slug)
	if err != nil {
		return nil, err
	}
	if page == nil || page.UpdatedAt == nil {
		return nil, ErrNotFound
	}

	pub, err := renderPage(page, locale, page.LabelsLive, page.ContentLive)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(pub)
	if err == nil {
		if setErr := s.appCtx.GetRedis().Set(s.appCtx.GetCtx(), cacheKey, buf, publicPageCacheTTL).Err(); setErr != nil {
			s.appCtx.Log.Warnf("public cache set %s: %v", cacheKey, setErr)
		}
	}
	return pub, nil
}

// Preview 草稿预览：共享密钥加一次性令牌换草稿内容，不走缓存
func (s *PublicService) Preview(site, secret, token, locale string) (*PublicPage, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.preview.Secret)) != 1 {
		return nil, ErrPreviewSecret
	}
	if !model.IsValidLocale(locale) {
		return nil, invalidf("unknown locale: %s", locale)
	}

	pageId, err := s.appCtx.GetRedis().Get(s.appCtx.GetCtx(), previewKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	page, err := s.repos.Page.GetPage(pageId)
	if err != nil {
		return nil, err
	}
	if page == nil || page.Site != site {
		return nil, ErrNotFound
	}
	return renderPage(page, locale, page.LabelsDraft, page.ContentDraft)
}

// Posts 已发布文章列表
func (s *PublicService) Posts() ([]model.Post, error) {
	return s.repos.Post.ListPosts(true)
}

// PostBySlug 按 slug 取已发布文章，body 为 markdown 时渲染为 HTML
func (s *PublicService) PostBySlug(slug, locale string) (*model.Post, string, error) {
	if !model.IsValidLocale(locale) {
		return nil, "", invalidf("unknown locale: %s", locale)
	}
	post, err := s.repos.Post.GetPostBySlug(slug)
	if err != nil {
		return nil, "", err
	}
	if post == nil {
		return nil, "", ErrNotFound
	}
	html, err := markdown.Render(post.Body[locale])
	if err != nil {
		return nil, "", err
	}
	return post, html, nil
}

// Faqs 站点已发布 FAQ 列表
func (s *PublicService) Faqs(site string) ([]model.Faq, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	return s.repos.Faq.ListFaqs(site, true)
}

func renderPage(page *model.Page, locale string, labels, content map[string]string) (*PublicPage, error) {
	body := content[locale]
	if page.SaveFormat == model.SaveFormatMarkdown {
		html, err := markdown.Render(body)
		if err != nil {
			return nil, err
		}
		body = html
	}
	return &PublicPage{
		Slug:       page.Slug,
		Locale:     locale,
		Label:      labels[locale],
		Html:       body,
		SaveFormat: page.SaveFormat,
		UpdatedAt:  page.UpdatedAt,
	}, nil
}

func pruneDisabled(forest []*menutree.Node, locale string) []*menutree.Node {
	var out []*menutree.Node
	for _, n := range forest {
		if !n.EnabledFor(locale) {
			continue
		}
		n.Children = pruneDisabled(n.Children, locale)
		out = append(out, n)
	}
	return out
}
