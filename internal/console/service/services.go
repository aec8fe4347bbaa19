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

package service

import (
	"errors"
	"fmt"

	"github.com/google/wire"

	"github.com/logbase-dev/atsignal/internal/console/repo"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/storage"
)

// ProviderSet 提供 service 相关的依赖
var ProviderSet = wire.NewSet(NewServices)

// ErrNotFound 目标记录不存在
var ErrNotFound = errors.New("not found")

// ValidationError 请求数据不合法，映射为 BadRequest
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PreconditionError 请求本身合法，但当前状态不允许该操作
// （例如删除仍有子节点的菜单、启用父级未启用的菜单）
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string { return e.msg }

func preconditionf(format string, args ...any) error {
	return &PreconditionError{msg: fmt.Sprintf(format, args...)}
}

// IsPrecondition 判断是否为前置条件错误
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// Preview 草稿预览配置
type Preview struct {
	Secret   string // 渲染端共享密钥
	BaseURL  string // 公开站点基础 URL
	TokenTTL int    // 预览令牌有效期，分钟
}

// Newsletter 邮件列表转发配置
type Newsletter struct {
	ProviderURL string
	APIKey      string
	ListId      string
	Timeout     int // 秒
}

// Services 统一管理所有 service
type Services struct {
	Menu       *MenuService
	Page       *PageService
	Public     *PublicService
	Faq        *FaqService
	Post       *PostService
	Upload     *UploadService
	Newsletter *NewsletterService
}

// NewServices 初始化所有 service
func NewServices(appCtx *ctx.Context, repos *repo.Repositories, store storage.StorageProvider,
	storageCfg *storage.Storage, preview Preview, newsletter Newsletter) *Services {
	pageSvc := NewPageService(appCtx, repos.Page, repos.Menu, store, preview)
	return &Services{
		Menu:       NewMenuService(appCtx, repos.Menu, repos.Page, pageSvc),
		Page:       pageSvc,
		Public:     NewPublicService(appCtx, repos, preview),
		Faq:        NewFaqService(repos.Faq),
		Post:       NewPostService(repos.Post),
		Upload:     NewUploadService(appCtx, store, storageCfg),
		Newsletter: NewNewsletterService(newsletter),
	}
}
