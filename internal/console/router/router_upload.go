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
	"github.com/gofiber/fiber/v2"

	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/log"
)

func (rt *Router) uploadRouter(r fiber.Router, auth fiber.Handler) {
	uploadGroup := r.Group("/upload")
	{
		// 编辑器图片上传
		uploadGroup.Post("/image", auth, rt.uploadImage)
	}
}

// uploadImage 上传图片，返回可公开访问的 URL
func (rt *Router) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		log.Errorf("upload image parse form failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	url, err := rt.Svc.Upload.UploadImage(file)
	if err != nil {
		log.Errorf("upload image failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"url": url})
	return nil
}
