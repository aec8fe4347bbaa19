package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/logbase-dev/atsignal/internal/console/menutree"
	"github.com/logbase-dev/atsignal/internal/console/model"
	appctx "github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/log"
)

// 纯内存 fake，给 service 层测试用；并发级联写会竞争访问，全部加锁

type fakeMenuRepo struct {
	mu    sync.Mutex
	menus map[string]*model.Menu
	calls []string // 操作日志，用于断言写序
	seq   int
}

func newFakeMenuRepo(menus ...model.Menu) *fakeMenuRepo {
	r := &fakeMenuRepo{menus: map[string]*model.Menu{}}
	for i := range menus {
		m := menus[i]
		r.menus[m.MenuId] = &m
	}
	return r
}

func (r *fakeMenuRepo) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *fakeMenuRepo) ListMenus(site string) ([]model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Menu
	for _, m := range r.menus {
		if m.Site == site {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) GetMenu(menuId string) (*model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[menuId]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMenuRepo) CreateMenu(m *model.Menu) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if m.MenuId == "" {
		m.MenuId = fmt.Sprintf("menu-%d", r.seq)
	}
	m.Normalize()
	cp := *m
	r.menus[m.MenuId] = &cp
	r.log("create %s", m.MenuId)
	return m.MenuId, nil
}

func (r *fakeMenuRepo) UpdateMenu(menuId string, upd model.UpdateMenuReq) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[menuId]
	if !ok {
		return fmt.Errorf("menu %s not found", menuId)
	}
	if upd.Labels != nil {
		m.Labels = upd.Labels
	}
	if upd.Path != nil {
		m.Path = *upd.Path
		r.log("update-path %s %s", menuId, *upd.Path)
	}
	if upd.PageType != nil {
		m.PageType = *upd.PageType
	}
	if upd.Order != nil {
		m.Order = *upd.Order
	}
	return nil
}

func (r *fakeMenuRepo) SetEnabled(menuId, locale string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[menuId]
	if !ok {
		return fmt.Errorf("menu %s not found", menuId)
	}
	if m.Enabled == nil {
		m.Enabled = map[string]bool{}
	}
	m.Enabled[locale] = enabled
	r.log("set-enabled %s %s %v", menuId, locale, enabled)
	return nil
}

func (r *fakeMenuRepo) ApplyDelta(d menutree.Delta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[d.MenuId]
	if !ok {
		return fmt.Errorf("menu %s not found", d.MenuId)
	}
	m.Order = d.Order
	if d.ParentId != nil {
		m.ParentId = *d.ParentId
	}
	if d.Depth != nil {
		m.Depth = *d.Depth
	}
	return nil
}

func (r *fakeMenuRepo) DeleteMenu(menuId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.menus, menuId)
	r.log("delete-menu %s", menuId)
	return nil
}

func (r *fakeMenuRepo) CountChildren(menuId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.menus {
		if m.ParentId == menuId {
			n++
		}
	}
	return n, nil
}

type fakePageRepo struct {
	mu    sync.Mutex
	pages map[string]*model.Page
	calls []string
	seq   int
}

func newFakePageRepo(pages ...model.Page) *fakePageRepo {
	r := &fakePageRepo{pages: map[string]*model.Page{}}
	for i := range pages {
		p := pages[i]
		r.pages[p.PageId] = &p
	}
	return r
}

func (r *fakePageRepo) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *fakePageRepo) ListPages(site string) ([]model.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Page
	for _, p := range r.pages {
		if p.Site == site {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePageRepo) GetPage(pageId string) (*model.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[pageId]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePageRepo) GetPageBySlug(site, slug string) (*model.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log("get-by-slug %s %s", site, slug)
	for _, p := range r.pages {
		if p.Site == site && p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePageRepo) ListPagesByMenu(menuId string) ([]model.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Page
	for _, p := range r.pages {
		if p.MenuId == menuId {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePageRepo) SaveDraft(site string, d model.PageDraft, existingId string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existingId == "" {
		r.seq++
		pageId := fmt.Sprintf("page-%d", r.seq)
		page := &model.Page{
			PageId: pageId, Site: site, MenuId: d.MenuId, Slug: d.Slug,
			LabelsDraft: d.Labels, ContentDraft: d.Content,
			EditorType: d.EditorType, SaveFormat: d.SaveFormat,
			CreatedAt: now, DraftUpdatedAt: &now,
		}
		page.Normalize()
		r.pages[pageId] = page
		r.log("save-draft %s", pageId)
		return pageId, nil
	}
	p, ok := r.pages[existingId]
	if !ok {
		return "", fmt.Errorf("page %s not found", existingId)
	}
	p.MenuId, p.Slug = d.MenuId, d.Slug
	p.LabelsDraft, p.ContentDraft = d.Labels, d.Content
	p.EditorType, p.SaveFormat = d.EditorType, d.SaveFormat
	p.DraftUpdatedAt = &now
	r.log("save-draft %s", existingId)
	return existingId, nil
}

func (r *fakePageRepo) Publish(pageId string, d model.PageDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[pageId]
	if !ok {
		return fmt.Errorf("page %s not found", pageId)
	}
	now := time.Now()
	p.MenuId, p.Slug = d.MenuId, d.Slug
	p.LabelsLive, p.ContentLive = d.Labels, d.Content
	p.LabelsDraft, p.ContentDraft = d.Labels, d.Content
	p.EditorType, p.SaveFormat = d.EditorType, d.SaveFormat
	p.UpdatedAt, p.DraftUpdatedAt = &now, &now
	r.log("publish %s", pageId)
	return nil
}

func (r *fakePageRepo) DeletePage(pageId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, pageId)
	r.log("delete-page %s", pageId)
	return nil
}

func (r *fakePageRepo) UpdateSlugByMenu(menuId, slug string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.pages {
		if p.MenuId == menuId {
			p.Slug = slug
			n++
		}
	}
	r.log("cascade-slug %s %s", menuId, slug)
	return n, nil
}

// fakeStorage 记录对象删除顺序
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) PutObject(_ *appctx.Context, objectName string, _ *multipart.FileHeader, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = nil
	return objectName, nil
}

func (s *fakeStorage) GetObject(_ *appctx.Context, objectName string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[objectName], nil
}

func (s *fakeStorage) Delete(_ *appctx.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, objectName)
	delete(s.objects, objectName)
	return nil
}

// fakeCache 纯内存 ICache
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.data[key] = v
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprintf("%v", v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (c *fakeCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (c *fakeCache) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return redis.NewBoolResult(ok, nil)
}

func testAppCtx(cache *fakeCache) *appctx.Context {
	return &appctx.Context{
		Redis: cache,
		Ctx:   context.Background(),
		Log:   log.GetLogger(),
	}
}
