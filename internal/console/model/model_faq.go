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

// Faq 常见问题条目（support 前台展示）
type Faq struct {
	FaqId     string            `bson:"faq_id" json:"faqId"`
	Site      string            `bson:"site" json:"site"`
	Category  string            `bson:"category" json:"category"`
	Question  map[string]string `bson:"question" json:"question"` // 按语言
	Answer    map[string]string `bson:"answer" json:"answer"`     // 按语言
	Order     int               `bson:"order" json:"order"`
	Published bool              `bson:"published" json:"published"`
	CreatedAt time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updatedAt"`
}

// FaqReq 创建/更新 FAQ 请求
type FaqReq struct {
	Site      string            `json:"site"`
	Category  string            `json:"category"`
	Question  map[string]string `json:"question"`
	Answer    map[string]string `json:"answer"`
	Order     *int              `json:"order,omitempty"`
	Published *bool             `json:"published,omitempty"`
}
