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

// Post 博客文章
type Post struct {
	PostId      string            `bson:"post_id" json:"postId"`
	Slug        string            `bson:"slug" json:"slug"`
	Title       map[string]string `bson:"title" json:"title"` // 按语言
	Body        map[string]string `bson:"body" json:"body"`   // 按语言，markdown
	Tags        []string          `bson:"tags" json:"tags"`
	Published   bool              `bson:"published" json:"published"`
	PublishedAt *time.Time        `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updated_at" json:"updatedAt"`
}

// PostReq 创建/更新文章请求
type PostReq struct {
	Slug      string            `json:"slug"`
	Title     map[string]string `json:"title"`
	Body      map[string]string `json:"body"`
	Tags      []string          `json:"tags"`
	Published *bool             `json:"published,omitempty"`
}
