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
	"sort"
	"time"

	perrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logbase-dev/atsignal/internal/console/menutree"
	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/database"
	"github.com/logbase-dev/atsignal/pkg/id"
)

type IMenuRepository interface {
	// ListMenus 返回站点全部菜单（管理视图，不按启用状态过滤），按 order 升序
	ListMenus(site string) ([]model.Menu, error)
	// GetMenu 按 id 获取菜单，不存在时返回 (nil, nil)
	GetMenu(menuId string) (*model.Menu, error)
	// CreateMenu 创建菜单并返回 id
	CreateMenu(m *model.Menu) (string, error)
	// UpdateMenu 部分更新，nil 字段不写。注意：path 变更不会级联到
	// 后代菜单自身的 path，只有绑定页面的 slug 由调用方级联（观察到的
	// 参考行为，见 DESIGN.md）
	UpdateMenu(menuId string, upd model.UpdateMenuReq) error
	// SetEnabled 设置单个菜单某语言的启用状态
	SetEnabled(menuId, locale string, enabled bool) error
	// ApplyDelta 持久化一条拖拽增量
	ApplyDelta(d menutree.Delta) error
	// DeleteMenu 仅删除菜单记录本身；页面级联由调用方负责
	DeleteMenu(menuId string) error
	// CountChildren 统计直接子菜单数量
	CountChildren(menuId string) (int64, error)
}

type MenuRepo struct {
	appCtx *ctx.Context
}

func NewMenuRepo(appCtx *ctx.Context) IMenuRepository {
	return &MenuRepo{appCtx: appCtx}
}

func (r *MenuRepo) coll() *mongo.Collection {
	return r.appCtx.GetMongo().GetCollection(collMenus)
}

// ListMenus 获取站点全部菜单
// 排序在客户端完成，避免依赖存储侧的复合索引
func (r *MenuRepo) ListMenus(site string) ([]model.Menu, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	cur, err := r.coll().Find(opCtx, bson.M{"site": site})
	if err != nil {
		return nil, perrors.Wrap(err, "list menus")
	}
	defer cur.Close(opCtx)

	var menus []model.Menu
	if err := cur.All(opCtx, &menus); err != nil {
		return nil, perrors.Wrap(err, "decode menus")
	}
	for i := range menus {
		menus[i].Normalize()
	}
	sort.SliceStable(menus, func(i, j int) bool {
		return menus[i].Order < menus[j].Order
	})
	return menus, nil
}

func (r *MenuRepo) GetMenu(menuId string) (*model.Menu, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	var menu model.Menu
	err := r.coll().FindOne(opCtx, bson.M{"menu_id": menuId}).Decode(&menu)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "get menu")
	}
	menu.Normalize()
	return &menu, nil
}

func (r *MenuRepo) CreateMenu(m *model.Menu) (string, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	if m.MenuId == "" {
		m.MenuId = id.GetXid()
	}
	m.Normalize()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := r.coll().InsertOne(opCtx, m); err != nil {
		return "", perrors.Wrap(err, "create menu")
	}
	return m.MenuId, nil
}

func (r *MenuRepo) UpdateMenu(menuId string, upd model.UpdateMenuReq) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Labels != nil {
		set["labels"] = upd.Labels
	}
	if upd.Path != nil {
		set["path"] = *upd.Path
	}
	if upd.PageType != nil {
		set["page_type"] = *upd.PageType
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}
	return r.updateOne(menuId, set)
}

func (r *MenuRepo) SetEnabled(menuId, locale string, enabled bool) error {
	return r.updateOne(menuId, bson.M{
		"enabled." + locale: enabled,
		"updated_at":        time.Now(),
	})
}

func (r *MenuRepo) ApplyDelta(d menutree.Delta) error {
	set := bson.M{
		"order":      d.Order,
		"updated_at": time.Now(),
	}
	if d.ParentId != nil {
		set["parent_id"] = *d.ParentId
	}
	if d.Depth != nil {
		set["depth"] = *d.Depth
	}
	return r.updateOne(d.MenuId, set)
}

func (r *MenuRepo) DeleteMenu(menuId string) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	if _, err := r.coll().DeleteOne(opCtx, bson.M{"menu_id": menuId}); err != nil {
		return perrors.Wrap(err, "delete menu")
	}
	return nil
}

func (r *MenuRepo) CountChildren(menuId string) (int64, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	n, err := r.coll().CountDocuments(opCtx, bson.M{"parent_id": menuId})
	if err != nil {
		return 0, perrors.Wrap(err, "count children")
	}
	return n, nil
}

func (r *MenuRepo) updateOne(menuId string, set bson.M) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	res, err := r.coll().UpdateOne(opCtx, bson.M{"menu_id": menuId}, bson.M{"$set": set})
	if err != nil {
		return perrors.Wrap(err, "update menu")
	}
	if res.MatchedCount == 0 {
		return perrors.Errorf("menu %s not found", menuId)
	}
	return nil
}
