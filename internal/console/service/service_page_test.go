package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logbase-dev/atsignal/internal/console/model"
)

func newPageServiceForTest(menus *fakeMenuRepo, pages *fakePageRepo) (*PageService, *fakeStorage, *fakeCache) {
	cache := newFakeCache()
	store := newFakeStorage()
	svc := NewPageService(testAppCtx(cache), pages, menus, store,
		Preview{Secret: "s3cret", BaseURL: "https://example.com", TokenTTL: 30})
	return svc, store, cache
}

func draftFor(menuId string) model.PageDraft {
	return model.PageDraft{
		MenuId:     menuId,
		Labels:     map[string]string{"ko": "소개"},
		Content:    map[string]string{"ko": "# 안녕"},
		SaveFormat: model.SaveFormatMarkdown,
	}
}

func TestSaveDraft_NewPageHasNoLiveContent(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _, _ := newPageServiceForTest(menus, pages)

	id, err := svc.SaveDraft(model.SiteWeb, "", draftFor("m1"))
	require.NoError(t, err)

	p, _ := pages.GetPage(id)
	require.NotNil(t, p)
	assert.Empty(t, p.ContentLive)
	assert.Nil(t, p.UpdatedAt, "never published")
	assert.True(t, p.HasPendingDraft())
	assert.Equal(t, "about", p.Slug, "slug mirrors the bound menu path")
}

func TestSaveDraft_SlugOverriddenByMenuPath(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _, _ := newPageServiceForTest(menus, pages)

	d := draftFor("m21")
	d.Slug = "whatever-the-client-sent"
	id, err := svc.SaveDraft(model.SiteWeb, "", d)
	require.NoError(t, err)

	p, _ := pages.GetPage(id)
	assert.Equal(t, "products/a", p.Slug)
}

func TestSaveDraft_MenuAlreadyBound(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo(model.Page{PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about"})
	svc, _, _ := newPageServiceForTest(menus, pages)

	_, err := svc.SaveDraft(model.SiteWeb, "", draftFor("m1"))
	assert.True(t, IsPrecondition(err), "want precondition error, got %v", err)

	// 同一页面重新保存到自己的菜单是允许的
	_, err = svc.SaveDraft(model.SiteWeb, "p1", draftFor("m1"))
	assert.NoError(t, err)
}

func TestSaveDraft_LinksMenuRejected(t *testing.T) {
	menus := newFakeMenuRepo(model.Menu{
		MenuId: "ml", Site: model.SiteWeb, Labels: map[string]string{"ko": "외부"},
		Path: "https://partner.example.com", PageType: model.PageTypeLinks, Depth: 1, Order: 1,
	})
	svc, _, _ := newPageServiceForTest(menus, newFakePageRepo())

	_, err := svc.SaveDraft(model.SiteWeb, "", draftFor("ml"))
	assert.True(t, IsValidation(err), "want validation error, got %v", err)
}

func TestPublish_ClearsPendingDraft(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _, _ := newPageServiceForTest(menus, pages)

	id, err := svc.SaveDraft(model.SiteWeb, "", draftFor("m1"))
	require.NoError(t, err)

	d := draftFor("m1")
	d.Content = map[string]string{"ko": "# 발행"}
	_, err = svc.Publish(model.SiteWeb, id, d)
	require.NoError(t, err)

	p, _ := pages.GetPage(id)
	require.NotNil(t, p.UpdatedAt)
	require.NotNil(t, p.DraftUpdatedAt)
	assert.True(t, p.UpdatedAt.Equal(*p.DraftUpdatedAt), "publish stamps both timestamps to the same instant")
	assert.False(t, p.HasPendingDraft())
	assert.Equal(t, "# 발행", p.ContentLive["ko"])
	assert.Equal(t, "# 발행", p.ContentDraft["ko"], "publish is an implicit draft save")
}

func TestPublish_NewPageDirectly(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _, _ := newPageServiceForTest(menus, pages)

	id, err := svc.Publish(model.SiteWeb, "", draftFor("m1"))
	require.NoError(t, err)

	p, _ := pages.GetPage(id)
	require.NotNil(t, p)
	assert.NotNil(t, p.UpdatedAt)
	assert.False(t, p.HasPendingDraft())
}

func TestPublish_InvalidatesPublicCache(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _, cache := newPageServiceForTest(menus, pages)

	key := publicPageCacheKey(model.SiteWeb, "about", model.LocaleKo)
	cache.data[key] = `{"slug":"about"}`

	_, err := svc.Publish(model.SiteWeb, "", draftFor("m1"))
	require.NoError(t, err)

	_, ok := cache.data[key]
	assert.False(t, ok, "stale cache entry must be dropped on publish")
}

func TestDelete_CleansImagesBeforeRecord(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	now := time.Now()
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about",
		ContentDraft: map[string]string{
			"ko": `본문 ![스크린샷](https://cdn.example.com/images/medium/shot.png) 끝`,
		},
		ContentLive: map[string]string{
			"ko": `<p><img src="https://cdn.example.com/images/large/hero.jpg" alt=""></p>`,
		},
		UpdatedAt: &now,
	})
	svc, store, _ := newPageServiceForTest(menus, pages)

	require.NoError(t, svc.Delete("p1"))

	// 两张图片、各四个尺寸变体
	assert.Len(t, store.deleted, 8)
	for _, variant := range []string{"thumbnail", "medium", "large", "original"} {
		assert.Contains(t, store.deleted, "images/"+variant+"/shot.png")
		assert.Contains(t, store.deleted, "images/"+variant+"/hero.jpg")
	}

	p, _ := pages.GetPage("p1")
	assert.Nil(t, p)
	// 记录删除排在全部图片清理之后
	require.NotEmpty(t, pages.calls)
	assert.Equal(t, "delete-page p1", pages.calls[len(pages.calls)-1])
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newPageServiceForTest(newFakeMenuRepo(), newFakePageRepo())
	assert.ErrorIs(t, svc.Delete("nope"), ErrNotFound)
}

func TestPreviewURL_TokenStoredInCache(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo(model.Page{PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about"})
	svc, _, cache := newPageServiceForTest(menus, pages)

	u, err := svc.PreviewURL(model.SiteWeb, "p1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://example.com/pub/web/preview?"), u)
	assert.Contains(t, u, "secret=s3cret")

	// 令牌在缓存中映射回页面 id
	found := false
	for k, v := range cache.data {
		if strings.HasPrefix(k, previewKeyPrefix) && v == "p1" {
			found = true
		}
	}
	assert.True(t, found, "preview token missing from cache")
}

func TestEditorContext_ExcludesLinksAndBoundMenus(t *testing.T) {
	menus := newFakeMenuRepo(append(sampleSiteMenus(), model.Menu{
		MenuId: "ml", Site: model.SiteWeb, Labels: map[string]string{"ko": "외부"},
		Path: "https://partner.example.com", PageType: model.PageTypeLinks, Depth: 1, Order: 9,
	})...)
	pages := newFakePageRepo(model.Page{PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about"})
	svc, _, _ := newPageServiceForTest(menus, pages)

	// 新建页面视角：m1 已被 p1 绑定，links 菜单不可选
	ec, err := svc.EditorContext(model.SiteWeb, "")
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, o := range ec.MenuOptions {
		ids[o.MenuId] = true
	}
	assert.False(t, ids["m1"], "bound menu excluded")
	assert.False(t, ids["ml"], "links menu excluded")
	assert.True(t, ids["m2"] && ids["m21"] && ids["m22"] && ids["m221"])

	// 编辑 p1 视角：自己的菜单保留在下拉项里
	ec, err = svc.EditorContext(model.SiteWeb, "p1")
	require.NoError(t, err)
	ids = map[string]bool{}
	for _, o := range ec.MenuOptions {
		ids[o.MenuId] = true
	}
	assert.True(t, ids["m1"])
	require.NotNil(t, ec.Page)
	assert.Equal(t, "p1", ec.Page.PageId)
}
