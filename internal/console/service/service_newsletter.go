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
	"context"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
	perrors "github.com/pkg/errors"

	"github.com/logbase-dev/atsignal/pkg/retry"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewsletterService 邮件订阅转发。只做校验和投递，列表语义
// （去重、确认邮件等）由提供方负责。
type NewsletterService struct {
	cfg    Newsletter
	client *resty.Client
}

func NewNewsletterService(cfg Newsletter) *NewsletterService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NewsletterService{
		cfg:    cfg,
		client: resty.New().SetTimeout(timeout),
	}
}

// Subscribe 校验邮箱并转发到邮件列表提供方，带指数退避重试。
// 提供方持续失败时返回一个可重试的统一错误，不泄漏提供方细节。
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	if !emailPattern.MatchString(email) {
		return invalidf("invalid email address")
	}

	err := retry.Do(ctx, func(ctx context.Context) error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+s.cfg.APIKey).
			SetBody(map[string]string{
				"email":  email,
				"listId": s.cfg.ListId,
			}).
			Post(s.cfg.ProviderURL)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return perrors.Errorf("newsletter provider status %d", resp.StatusCode())
		}
		return nil
	}, retry.WithMaxAttempts(3), retry.WithBackoff(retry.Exponential(500*time.Millisecond, 5*time.Second)))

	if err != nil {
		return perrors.Wrap(err, "subscribe newsletter")
	}
	return nil
}
