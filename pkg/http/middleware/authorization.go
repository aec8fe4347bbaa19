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

package middleware

import (
	"context"
	"errors"
	"strings"

	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/gofiber/fiber/v2"

	"github.com/logbase-dev/atsignal/pkg/cache"
	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/jwt"
	"github.com/logbase-dev/atsignal/pkg/log"
)

// SessionCookie 管理控制台的会话 Cookie 名称
const SessionCookie = "as_token"

// AuthorizationMiddleware 认证中间件
// 管理控制台基于 Cookie 会话；令牌也可以通过 Authorization 头携带。
// 会话令牌必须在 Redis 中存在（登出后立即失效）。
func AuthorizationMiddleware(secretKey, sessionKeyPrefix string, client cache.ICache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			// Authorization: Bearer <token>
			aToken := c.Get("Authorization")
			parts := strings.SplitN(aToken, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(token, secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		// 检查 Redis 中会话是否仍然有效
		sessionKey := sessionKeyPrefix + claims.TokenId
		exists, err := client.Exists(context.Background(), sessionKey).Result()
		if err != nil {
			log.Errorf("redis check session exists failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if exists == 0 {
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		c.Locals(CLAIMS, claims)
		return c.Next()
	}
}
