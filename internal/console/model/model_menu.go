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

package model

import "time"

// Menu 菜单节点，持久化为扁平记录，树结构按需物化
type Menu struct {
	MenuId    string            `bson:"menu_id" json:"menuId"`       // 菜单唯一标识
	Site      string            `bson:"site" json:"site"`            // 所属站点：web、docs
	Labels    map[string]string `bson:"labels" json:"labels"`        // 按语言的菜单名称，ko 必填
	Path      string            `bson:"path" json:"path"`            // URL 路径段；links 类型存外部 URL
	PageType  string            `bson:"page_type" json:"pageType"`   // 页面类型：dynamic、static、notice、links
	Depth     int               `bson:"depth" json:"depth"`          // 深度，根节点为 1，派生值
	ParentId  string            `bson:"parent_id" json:"parentId"`   // 父菜单ID（为空表示顶级菜单）
	Order     int               `bson:"order" json:"order"`          // 同级排序（数值越小越靠前）
	Enabled   map[string]bool   `bson:"enabled" json:"enabled"`      // 按语言的启用状态
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updatedAt"`
}

// RootParentId 顶级菜单的 parent_id 哨兵值
const RootParentId = ""

// 页面类型常量
const (
	PageTypeDynamic = "dynamic"
	PageTypeStatic  = "static"
	PageTypeNotice  = "notice"
	PageTypeLinks   = "links" // path 存外部 URL，不参与路径唯一性校验
)

// PageTypes 所有页面类型
var PageTypes = []string{PageTypeDynamic, PageTypeStatic, PageTypeNotice, PageTypeLinks}

// IsValidPageType 校验页面类型取值
func IsValidPageType(t string) bool {
	for _, pt := range PageTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// IsRoot 是否为顶级菜单
func (m *Menu) IsRoot() bool {
	return m.ParentId == RootParentId
}

// EnabledFor 指定语言是否启用
func (m *Menu) EnabledFor(locale string) bool {
	return m.Enabled[locale]
}

// Normalize 填充缺省值，Store 边界统一调用一次
func (m *Menu) Normalize() {
	if m.Labels == nil {
		m.Labels = map[string]string{}
	}
	if m.Enabled == nil {
		m.Enabled = map[string]bool{}
		for _, locale := range Locales {
			m.Enabled[locale] = locale == PrimaryLocale
		}
	}
	if m.PageType == "" {
		m.PageType = PageTypeDynamic
	}
	if m.Depth < 1 {
		m.Depth = 1
	}
}

// CreateMenuReq 创建菜单请求
type CreateMenuReq struct {
	Site     string            `json:"site"`
	Labels   map[string]string `json:"labels"`
	Path     string            `json:"path"`
	PageType string            `json:"pageType"`
	ParentId string            `json:"parentId"`
	Order    *int              `json:"order,omitempty"` // 缺省为同级最大 order + 1
	Enabled  map[string]bool   `json:"enabled,omitempty"`
}

// UpdateMenuReq 更新菜单请求，nil 字段不更新
type UpdateMenuReq struct {
	Labels   map[string]string `json:"labels,omitempty"`
	Path     *string           `json:"path,omitempty"`
	PageType *string           `json:"pageType,omitempty"`
	Order    *int              `json:"order,omitempty"`
}

// DropMenuReq 拖拽请求，NewIndex 为目标兄弟列表中的插入位置（0 起）
type DropMenuReq struct {
	Site        string `json:"site"`
	MenuId      string `json:"menuId"`
	NewParentId string `json:"newParentId"`
	NewIndex    int    `json:"newIndex"`
}

// ToggleMenuReq 按语言启用/停用请求
type ToggleMenuReq struct {
	Locale  string `json:"locale"`
	Enabled bool   `json:"enabled"`
}
