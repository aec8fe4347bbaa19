package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
)

func newPublicServiceForTest(menus *fakeMenuRepo, pages *fakePageRepo) (*PublicService, *fakeCache) {
	cache := newFakeCache()
	repos := &repo.Repositories{
		Menu: menus,
		Page: pages,
		Faq:  nil,
		Post: nil,
	}
	svc := NewPublicService(testAppCtx(cache), repos, Preview{Secret: "s3cret"})
	return svc, cache
}

func TestPublicMenuTree_PrunesDisabledSubtrees(t *testing.T) {
	menus := newFakeMenuRepo(sampleSiteMenus()...)
	svc, _ := newPublicServiceForTest(menus, newFakePageRepo())

	// en 下只有 m1 启用；m2 停用导致整棵子树被剪掉
	forest, err := svc.MenuTree(model.SiteWeb, model.LocaleEn)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "m1", forest[0].MenuId)

	// ko 下全部可见
	forest, err = svc.MenuTree(model.SiteWeb, model.LocaleKo)
	require.NoError(t, err)
	assert.Len(t, forest, 2)
}

func TestPublicPage_RendersMarkdownAndCaches(t *testing.T) {
	now := time.Now()
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about",
		LabelsLive:  map[string]string{"ko": "소개"},
		ContentLive: map[string]string{"ko": "# 제목\n\n본문"},
		SaveFormat:  model.SaveFormatMarkdown,
		UpdatedAt:   &now,
	})
	svc, cache := newPublicServiceForTest(newFakeMenuRepo(), pages)

	pub, err := svc.Page(model.SiteWeb, "about", model.LocaleKo)
	require.NoError(t, err)
	assert.Equal(t, "소개", pub.Label)
	assert.Contains(t, pub.Html, "<h1")
	assert.Contains(t, pub.Html, "제목")

	// 第二次命中缓存，不再回源
	_, ok := cache.data[publicPageCacheKey(model.SiteWeb, "about", model.LocaleKo)]
	assert.True(t, ok)
	before := len(pages.calls)
	_, err = svc.Page(model.SiteWeb, "about", model.LocaleKo)
	require.NoError(t, err)
	assert.Equal(t, before, len(pages.calls))
}

func TestPublicPage_UnpublishedInvisible(t *testing.T) {
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about",
		ContentDraft: map[string]string{"ko": "초안"},
	})
	svc, _ := newPublicServiceForTest(newFakeMenuRepo(), pages)

	_, err := svc.Page(model.SiteWeb, "about", model.LocaleKo)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicPreview_SecretGate(t *testing.T) {
	pages := newFakePageRepo(model.Page{
		PageId: "p1", Site: model.SiteWeb, MenuId: "m1", Slug: "about",
		LabelsDraft:  map[string]string{"ko": "초안 제목"},
		ContentDraft: map[string]string{"ko": "# 초안"},
		SaveFormat:   model.SaveFormatMarkdown,
	})
	svc, cache := newPublicServiceForTest(newFakeMenuRepo(), pages)
	cache.data[previewKeyPrefix+"tok-1"] = "p1"

	_, err := svc.Preview(model.SiteWeb, "wrong", "tok-1", model.LocaleKo)
	assert.ErrorIs(t, err, ErrPreviewSecret)

	pub, err := svc.Preview(model.SiteWeb, "s3cret", "tok-1", model.LocaleKo)
	require.NoError(t, err)
	assert.Equal(t, "초안 제목", pub.Label)
	assert.Contains(t, pub.Html, "초안")

	_, err = svc.Preview(model.SiteWeb, "s3cret", "expired-token", model.LocaleKo)
	assert.ErrorIs(t, err, ErrNotFound)
}
