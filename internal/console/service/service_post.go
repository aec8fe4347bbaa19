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
	"regexp"
	"strings"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
)

var postSlugPattern = regexp.MustCompile(`^[a-z0-9\-]+$`)

// PostService 博客文章管理
type PostService struct {
	posts repo.IPostRepository
}

func NewPostService(posts repo.IPostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) List() ([]model.Post, error) {
	return s.posts.ListPosts(false)
}

func (s *PostService) Get(postId string) (*model.Post, error) {
	post, err := s.posts.GetPost(postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) Create(req model.PostReq) (string, error) {
	if err := validatePost(&req); err != nil {
		return "", err
	}
	post := &model.Post{
		Slug:  req.Slug,
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	return s.posts.CreatePost(post)
}

func (s *PostService) Update(postId string, req model.PostReq) error {
	if err := validatePost(&req); err != nil {
		return err
	}
	existing, err := s.posts.GetPost(postId)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.posts.UpdatePost(postId, req)
}

func (s *PostService) Delete(postId string) error {
	existing, err := s.posts.GetPost(postId)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.posts.DeletePost(postId)
}

func validatePost(req *model.PostReq) error {
	if !postSlugPattern.MatchString(req.Slug) {
		return invalidf("post slug may only contain lowercase letters, digits and '-'")
	}
	if strings.TrimSpace(req.Title[model.PrimaryLocale]) == "" {
		return invalidf("title for primary locale %q is required", model.PrimaryLocale)
	}
	return nil
}
