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

package router

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/jwt"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/id"
	"github.com/logbase-dev/atsignal/pkg/log"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		// 登录，共享管理员凭据
		authGroup.Post("/login", rt.login)

		// 登出，失效会话
		authGroup.Post("/logout", auth, rt.logout)
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRep struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // 秒
}

// login 管理控制台登录
func (rt *Router) login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("login parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	authConf := rt.Http.Auth
	userOk := subtle.ConstantTimeCompare([]byte(req.Username), []byte(authConf.AdminUser)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(authConf.AdminPassHash), []byte(req.Password))
	if !userOk || passErr != nil {
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	expire := time.Duration(authConf.AccessExpire) * time.Minute
	tokenId := id.GetXid()
	token, err := jwt.GenToken(req.Username, tokenId, []byte(authConf.SecretKey), expire)
	if err != nil {
		log.Errorf("generate token failed: %v", err)
		return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
	}

	sessionKey := authConf.SessionKeyPrefix + tokenId
	if err := rt.Ctx.GetRedis().Set(rt.Ctx.GetCtx(), sessionKey, req.Username, expire).Err(); err != nil {
		log.Errorf("store session failed: %v", err)
		return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(expire),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.Locals(middleware.DETAIL, loginRep{
		AccessToken: token,
		ExpiresIn:   int64(expire.Seconds()),
	})
	return nil
}

// logout 登出，删除 Redis 会话并清理 Cookie
func (rt *Router) logout(c *fiber.Ctx) error {
	claims, ok := c.Locals(middleware.CLAIMS).(*jwt.AuthClaims)
	if !ok {
		return http.WithRepErrMsg(c, http.Unauthorized.Code, http.Unauthorized.Msg, c.Path())
	}

	sessionKey := rt.Http.Auth.SessionKeyPrefix + claims.TokenId
	if err := rt.Ctx.GetRedis().Del(rt.Ctx.GetCtx(), sessionKey).Err(); err != nil {
		log.Errorf("delete session failed: %v", err)
		return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	c.Locals(middleware.OPERATION, "logout")
	return nil
}
