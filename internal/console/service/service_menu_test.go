package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logbase-dev/atsignal/internal/console/model"
)

func sampleSiteMenus() []model.Menu {
	return []model.Menu{
		{MenuId: "m1", Site: model.SiteWeb, Labels: map[string]string{"ko": "소개"}, Path: "about",
			PageType: model.PageTypeDynamic, Depth: 1, ParentId: "", Order: 1,
			Enabled: map[string]bool{"ko": true, "en": true}},
		{MenuId: "m2", Site: model.SiteWeb, Labels: map[string]string{"ko": "제품"}, Path: "products",
			PageType: model.PageTypeDynamic, Depth: 1, ParentId: "", Order: 2,
			Enabled: map[string]bool{"ko": true, "en": false}},
		{MenuId: "m21", Site: model.SiteWeb, Labels: map[string]string{"ko": "제품 A"}, Path: "products/a",
			PageType: model.PageTypeDynamic, Depth: 2, ParentId: "m2", Order: 1,
			Enabled: map[string]bool{"ko": true, "en": false}},
		{MenuId: "m22", Site: model.SiteWeb, Labels: map[string]string{"ko": "제품 B"}, Path: "products/b",
			PageType: model.PageTypeDynamic, Depth: 2, ParentId: "m2", Order: 2,
			Enabled: map[string]bool{"ko": true, "en": false}},
		{MenuId: "m221", Site: model.SiteWeb, Labels: map[string]string{"ko": "제품 B 상세"}, Path: "products/b/detail",
			PageType: model.PageTypeDynamic, Depth: 3, ParentId: "m22", Order: 1,
			Enabled: map[string]bool{"ko": true, "en": false}},
	}
}

func newMenuServiceForTest(menus *fakeMenuRepo, pages *fakePageRepo) (*MenuService, *fakeStorage) {
	cache := newFakeCache()
	appCtx := testAppCtx(cache)
	store := newFakeStorage()
	pgSvc := NewPageService(appCtx, pages, menus, store, Preview{Secret: "s3cret", BaseURL: "https://example.com"})
	return NewMenuService(appCtx, menus, pages, pgSvc), store
}

func TestMenuCreate_DefaultsOrderAndDepth(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	id, err := svc.Create(model.CreateMenuReq{
		Site:     model.SiteWeb,
		Labels:   map[string]string{"ko": "제품 C"},
		Path:     "products/c",
		ParentId: "m2",
	})
	require.NoError(t, err)

	created, err := menus.GetMenu(id)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 3, created.Order, "appended after existing siblings")
	assert.Equal(t, 2, created.Depth, "depth derived from parent")
	assert.True(t, created.Enabled["ko"], "primary locale enabled by default")
	assert.False(t, created.Enabled["en"])
}

func TestMenuCreate_Validation(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	cases := []struct {
		name string
		req  model.CreateMenuReq
	}{
		{"missing ko label", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"en": "About"}, Path: "x"}},
		{"duplicate path", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "중복"}, Path: "about"}},
		{"leading slash", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "경로"}, Path: "/bad"}},
		{"double slash", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "경로"}, Path: "a//b"}},
		{"uppercase", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "경로"}, Path: "About"}},
		{"links without url", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "링크"}, Path: "not-a-url", PageType: model.PageTypeLinks}},
		{"unknown parent", model.CreateMenuReq{Site: model.SiteWeb, Labels: map[string]string{"ko": "고아"}, Path: "orphan", ParentId: "nope"}},
		{"unknown site", model.CreateMenuReq{Site: "blog", Labels: map[string]string{"ko": "x"}, Path: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.req)
			assert.True(t, IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestMenuCreate_LinksPathSkipsUniqueness(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	// 两个 links 菜单可以指向同一个外部 URL
	for i := 0; i < 2; i++ {
		_, err := svc.Create(model.CreateMenuReq{
			Site:     model.SiteWeb,
			Labels:   map[string]string{"ko": "외부"},
			Path:     "https://partner.example.com",
			PageType: model.PageTypeLinks,
		})
		require.NoError(t, err)
	}
}

func TestMenuUpdate_PathCascadesSlugFirst(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m2", Slug: "products",
	})
	svc, _ := newMenuServiceForTest(menus, pages)

	newPath := "catalog"
	err := svc.Update(model.SiteWeb, "m2", model.UpdateMenuReq{Path: &newPath})
	require.NoError(t, err)

	p, _ := pages.GetPage("p1")
	assert.Equal(t, "catalog", p.Slug)

	// 页面 slug 的写入必须先于菜单 path 的写入
	require.NotEmpty(t, pages.calls)
	assert.Equal(t, "cascade-slug m2 catalog", pages.calls[0])
	found := false
	for _, call := range menus.calls {
		if strings.HasPrefix(call, "update-path m2") {
			found = true
		}
	}
	assert.True(t, found, "menu path write missing: %v", menus.calls)
}

func TestMenuUpdate_SamePathSkipsCascade(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo()
	svc, _ := newMenuServiceForTest(menus, pages)

	same := "products"
	require.NoError(t, svc.Update(model.SiteWeb, "m2", model.UpdateMenuReq{Path: &same}))
	assert.Empty(t, pages.calls)
}

func TestMenuDelete_RejectsWithChildren(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	err := svc.Delete(model.SiteWeb, "m2")
	assert.True(t, IsPrecondition(err), "want precondition error, got %v", err)

	m, _ := menus.GetMenu("m2")
	assert.NotNil(t, m, "menu must survive a rejected delete")
}

func TestMenuDelete_CascadesBoundPage(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about",
		ContentLive: map[string]string{"ko": `<img src="https://cdn.example.com/images/large/pic.png">`},
	})
	svc, store := newMenuServiceForTest(menus, pages)

	require.NoError(t, svc.Delete(model.SiteWeb, "m1"))

	m, _ := menus.GetMenu("m1")
	assert.Nil(t, m)
	p, _ := pages.GetPage("p1")
	assert.Nil(t, p)
	// 页面随菜单删除时同样先清理图片
	assert.Contains(t, store.deleted, "images/original/pic.png")
}

func TestMenuToggle_EnableRequiresEnabledParent(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	// m2 在 en 下停用，子节点 m21 不能在 en 下启用
	err := svc.Toggle(model.SiteWeb, "m21", model.ToggleMenuReq{Locale: model.LocaleEn, Enabled: true})
	assert.True(t, IsPrecondition(err), "want precondition error, got %v", err)

	// ko 下父节点启用，允许
	require.NoError(t, svc.Toggle(model.SiteWeb, "m21", model.ToggleMenuReq{Locale: model.LocaleKo, Enabled: true}))
}

func TestMenuToggle_DisableCascadesToDescendants(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	require.NoError(t, svc.Toggle(model.SiteWeb, "m2", model.ToggleMenuReq{Locale: model.LocaleKo, Enabled: false}))

	for _, id := range []string{"m2", "m21", "m22", "m221"} {
		m, _ := menus.GetMenu(id)
		require.NotNil(t, m)
		assert.False(t, m.EnabledFor(model.LocaleKo), "menu %s should be disabled", id)
	}
	// 兄弟节点不受影响
	m1, _ := menus.GetMenu("m1")
	assert.True(t, m1.EnabledFor(model.LocaleKo))
}

func TestMenuDrop_IntoOwnDescendantRejected(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	for _, target := range []string{"m2", "m21", "m221"} {
		err := svc.Drop(model.DropMenuReq{Site: model.SiteWeb, MenuId: "m2", NewParentId: target, NewIndex: 0})
		assert.True(t, IsPrecondition(err), "drop m2 into %s must be rejected, got %v", target, err)
	}
}

func TestMenuDrop_ReorderSiblingsPersisted(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	// m22 移到 m2 下第一位
	require.NoError(t, svc.Drop(model.DropMenuReq{Site: model.SiteWeb, MenuId: "m22", NewParentId: "m2", NewIndex: 0}))

	m22, _ := menus.GetMenu("m22")
	m21, _ := menus.GetMenu("m21")
	assert.True(t, m22.Order < m21.Order, "m22(%d) should sort before m21(%d)", m22.Order, m21.Order)
}

func TestMenuDrop_MoveToNewParentRecomputesDepth(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newMenuServiceForTest(menus, newFakePageRepo())

	// m221 挂到根
	require.NoError(t, svc.Drop(model.DropMenuReq{Site: model.SiteWeb, MenuId: "m221", NewParentId: "", NewIndex: 0}))

	m221, _ := menus.GetMenu("m221")
	assert.Equal(t, model.RootParentId, m221.ParentId)
	assert.Equal(t, 1, m221.Depth)
}
