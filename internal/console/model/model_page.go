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

// Page CMS 页面，live 为已发布内容，draft 为待发布草稿
type Page struct {
	PageId       string            `bson:"page_id" json:"pageId"`
	Site         string            `bson:"site" json:"site"`
	MenuId       string            `bson:"menu_id" json:"menuId"` // 绑定的菜单，每个菜单至多一个页面
	Slug         string            `bson:"slug" json:"slug"`      // 镜像菜单 path，菜单改 path 时级联更新
	LabelsLive   map[string]string `bson:"labels_live" json:"labelsLive"`
	ContentLive  map[string]string `bson:"content_live" json:"contentLive"`
	LabelsDraft  map[string]string `bson:"labels_draft" json:"labelsDraft"`
	ContentDraft map[string]string `bson:"content_draft" json:"contentDraft"`
	EditorType   string            `bson:"editor_type" json:"editorType"` // 编辑器类型，展示元数据
	SaveFormat   string            `bson:"save_format" json:"saveFormat"` // markdown 或 html

	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`             // 最近发布时间
	DraftUpdatedAt *time.Time `bson:"draft_updated_at,omitempty" json:"draftUpdatedAt,omitempty"` // 最近草稿保存时间
}

// 内容保存格式常量
const (
	SaveFormatMarkdown = "markdown"
	SaveFormatHTML     = "html"
)

// HasPendingDraft 草稿比已发布内容新（派生状态，不落库）
func (p *Page) HasPendingDraft() bool {
	if p.DraftUpdatedAt == nil {
		return false
	}
	if p.UpdatedAt == nil {
		return true
	}
	return p.DraftUpdatedAt.After(*p.UpdatedAt)
}

// Normalize 填充缺省值，Store 边界统一调用一次
func (p *Page) Normalize() {
	if p.LabelsLive == nil {
		p.LabelsLive = map[string]string{}
	}
	if p.ContentLive == nil {
		p.ContentLive = map[string]string{}
	}
	if p.LabelsDraft == nil {
		p.LabelsDraft = map[string]string{}
	}
	if p.ContentDraft == nil {
		p.ContentDraft = map[string]string{}
	}
	if p.SaveFormat == "" {
		p.SaveFormat = SaveFormatMarkdown
	}
}

// PageDraft 草稿保存 / 发布的载荷
type PageDraft struct {
	MenuId     string            `json:"menuId"`
	Slug       string            `json:"slug"`
	Labels     map[string]string `json:"labels"`
	Content    map[string]string `json:"content"`
	EditorType string            `json:"editorType"`
	SaveFormat string            `json:"saveFormat"`
}

// MenuOption 页面编辑器的菜单绑定下拉项
type MenuOption struct {
	MenuId string `json:"menuId"`
	Label  string `json:"label"`
	Path   string `json:"path"`
	Depth  int    `json:"depth"`
}

// EditorContext 页面编辑器加载时的上下文
type EditorContext struct {
	Page        *Page        `json:"page,omitempty"`
	MenuOptions []MenuOption `json:"menuOptions"`
}
