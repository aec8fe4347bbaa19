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

package repo

import (
	"time"

	perrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/database"
	"github.com/logbase-dev/atsignal/pkg/id"
)

type IPageRepository interface {
	ListPages(site string) ([]model.Page, error)
	// GetPage 按 id 获取页面，不存在时返回 (nil, nil)
	GetPage(pageId string) (*model.Page, error)
	GetPageBySlug(site, slug string) (*model.Page, error)
	ListPagesByMenu(menuId string) ([]model.Page, error)
	// SaveDraft 保存草稿：existingId 为空时新建记录（live 字段置空），
	// 否则只更新 draft 字段与 draft_updated_at，不触碰 live 字段
	SaveDraft(site string, d model.PageDraft, existingId string) (string, error)
	// Publish 将 payload 同时写入 draft 与 live 字段，
	// updated_at 与 draft_updated_at 打同一时间戳——发布后必然无待发布草稿
	Publish(pageId string, d model.PageDraft) error
	// DeletePage 仅删除页面记录；图片清理由调用方先行执行
	DeletePage(pageId string) error
	// UpdateSlugByMenu 将绑定到 menuId 的全部页面的 slug 改写为 slug，
	// 返回受影响的条数
	UpdateSlugByMenu(menuId, slug string) (int64, error)
}

type PageRepo struct {
	appCtx *ctx.Context
}

func NewPageRepo(appCtx *ctx.Context) IPageRepository {
	return &PageRepo{appCtx: appCtx}
}

func (r *PageRepo) coll() *mongo.Collection {
	return r.appCtx.GetMongo().GetCollection(collPages)
}

func (r *PageRepo) ListPages(site string) ([]model.Page, error) {
	return r.findPages(bson.M{"site": site})
}

func (r *PageRepo) ListPagesByMenu(menuId string) ([]model.Page, error) {
	return r.findPages(bson.M{"menu_id": menuId})
}

func (r *PageRepo) GetPage(pageId string) (*model.Page, error) {
	return r.findPage(bson.M{"page_id": pageId})
}

func (r *PageRepo) GetPageBySlug(site, slug string) (*model.Page, error) {
	return r.findPage(bson.M{"site": site, "slug": slug})
}

func (r *PageRepo) SaveDraft(site string, d model.PageDraft, existingId string) (string, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	now := time.Now()
	if existingId == "" {
		page := &model.Page{
			PageId:         id.GetXid(),
			Site:           site,
			MenuId:         d.MenuId,
			Slug:           d.Slug,
			LabelsDraft:    d.Labels,
			ContentDraft:   d.Content,
			EditorType:     d.EditorType,
			SaveFormat:     d.SaveFormat,
			CreatedAt:      now,
			DraftUpdatedAt: &now,
		}
		page.Normalize()
		if _, err := r.coll().InsertOne(opCtx, page); err != nil {
			return "", perrors.Wrap(err, "create draft page")
		}
		return page.PageId, nil
	}

	set := bson.M{
		"menu_id":          d.MenuId,
		"slug":             d.Slug,
		"labels_draft":     d.Labels,
		"content_draft":    d.Content,
		"editor_type":      d.EditorType,
		"save_format":      d.SaveFormat,
		"draft_updated_at": now,
	}
	res, err := r.coll().UpdateOne(opCtx, bson.M{"page_id": existingId}, bson.M{"$set": set})
	if err != nil {
		return "", perrors.Wrap(err, "save draft")
	}
	if res.MatchedCount == 0 {
		return "", perrors.Errorf("page %s not found", existingId)
	}
	return existingId, nil
}

func (r *PageRepo) Publish(pageId string, d model.PageDraft) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	now := time.Now()
	set := bson.M{
		"menu_id":          d.MenuId,
		"slug":             d.Slug,
		"labels_live":      d.Labels,
		"content_live":     d.Content,
		"labels_draft":     d.Labels,
		"content_draft":    d.Content,
		"editor_type":      d.EditorType,
		"save_format":      d.SaveFormat,
		"updated_at":       now,
		"draft_updated_at": now,
	}
	res, err := r.coll().UpdateOne(opCtx, bson.M{"page_id": pageId}, bson.M{"$set": set})
	if err != nil {
		return perrors.Wrap(err, "publish page")
	}
	if res.MatchedCount == 0 {
		return perrors.Errorf("page %s not found", pageId)
	}
	return nil
}

func (r *PageRepo) DeletePage(pageId string) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	if _, err := r.coll().DeleteOne(opCtx, bson.M{"page_id": pageId}); err != nil {
		return perrors.Wrap(err, "delete page")
	}
	return nil
}

func (r *PageRepo) UpdateSlugByMenu(menuId, slug string) (int64, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	res, err := r.coll().UpdateMany(opCtx,
		bson.M{"menu_id": menuId},
		bson.M{"$set": bson.M{"slug": slug}},
	)
	if err != nil {
		return 0, perrors.Wrap(err, "cascade slug")
	}
	return res.ModifiedCount, nil
}

func (r *PageRepo) findPages(filter bson.M) ([]model.Page, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	cur, err := r.coll().Find(opCtx, filter)
	if err != nil {
		return nil, perrors.Wrap(err, "list pages")
	}
	defer cur.Close(opCtx)

	var pages []model.Page
	if err := cur.All(opCtx, &pages); err != nil {
		return nil, perrors.Wrap(err, "decode pages")
	}
	for i := range pages {
		pages[i].Normalize()
	}
	return pages, nil
}

func (r *PageRepo) findPage(filter bson.M) (*model.Page, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	var page model.Page
	err := r.coll().FindOne(opCtx, filter).Decode(&page)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "get page")
	}
	page.Normalize()
	return &page, nil
}
