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

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/http/middleware"
	"github.com/logbase-dev/atsignal/pkg/log"
)

func (rt *Router) postRouter(r fiber.Router, auth fiber.Handler) {
	postGroup := r.Group("/posts")
	{
		postGroup.Get("/", auth, rt.listPosts)
		postGroup.Get("/:postId", auth, rt.getPost)
		postGroup.Post("/", auth, rt.createPost)
		postGroup.Put("/:postId", auth, rt.updatePost)
		postGroup.Delete("/:postId", auth, rt.deletePost)
	}
}

func (rt *Router) listPosts(c *fiber.Ctx) error {
	posts, err := rt.Svc.Post.List()
	if err != nil {
		log.Errorf("list posts failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, posts)
	return nil
}

func (rt *Router) getPost(c *fiber.Ctx) error {
	post, err := rt.Svc.Post.Get(c.Params("postId"))
	if err != nil {
		log.Errorf("get post failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, post)
	return nil
}

func (rt *Router) createPost(c *fiber.Ctx) error {
	var req model.PostReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create post parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	postId, err := rt.Svc.Post.Create(req)
	if err != nil {
		log.Errorf("create post failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"postId": postId})
	return nil
}

func (rt *Router) updatePost(c *fiber.Ctx) error {
	var req model.PostReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update post parse request failed: %v", err)
		return http.WithRepErrMsg(c, http.BadRequest.Code, http.BadRequest.Msg, c.Path())
	}

	if err := rt.Svc.Post.Update(c.Params("postId"), req); err != nil {
		log.Errorf("update post failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "update post")
	return nil
}

func (rt *Router) deletePost(c *fiber.Ctx) error {
	if err := rt.Svc.Post.Delete(c.Params("postId")); err != nil {
		log.Errorf("delete post failed: %v", err)
		return repErr(c, err)
	}
	c.Locals(middleware.OPERATION, "delete post")
	return nil
}
