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
	"github.com/google/wire"

	"github.com/logbase-dev/atsignal/pkg/ctx"
)

// 集合名称
const (
	collMenus = "menus"
	collPages = "pages"
	collFaqs  = "faqs"
	collPosts = "posts"
)

// ProviderSet 提供 repository 相关的依赖
var ProviderSet = wire.NewSet(NewRepositories)

// Repositories 统一管理所有 repository
type Repositories struct {
	Menu IMenuRepository
	Page IPageRepository
	Faq  IFaqRepository
	Post IPostRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(appCtx *ctx.Context) *Repositories {
	return &Repositories{
		Menu: NewMenuRepo(appCtx),
		Page: NewPageRepo(appCtx),
		Faq:  NewFaqRepo(appCtx),
		Post: NewPostRepo(appCtx),
	}
}
