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
	"sort"
	"time"

	perrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/database"
	"github.com/logbase-dev/atsignal/pkg/id"
)

type IPostRepository interface {
	// ListPosts 按发布时间（缺省回退创建时间）倒序；
	// publishedOnly 为 true 时只返回已发布文章
	ListPosts(publishedOnly bool) ([]model.Post, error)
	GetPost(postId string) (*model.Post, error)
	// GetPostBySlug 公开站点按 slug 取已发布文章，不存在时返回 (nil, nil)
	GetPostBySlug(slug string) (*model.Post, error)
	CreatePost(post *model.Post) (string, error)
	UpdatePost(postId string, req model.PostReq) error
	DeletePost(postId string) error
}

type PostRepo struct {
	appCtx *ctx.Context
}

func NewPostRepo(appCtx *ctx.Context) IPostRepository {
	return &PostRepo{appCtx: appCtx}
}

func (r *PostRepo) coll() *mongo.Collection {
	return r.appCtx.GetMongo().GetCollection(collPosts)
}

func (r *PostRepo) ListPosts(publishedOnly bool) ([]model.Post, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	cur, err := r.coll().Find(opCtx, filter)
	if err != nil {
		return nil, perrors.Wrap(err, "list posts")
	}
	defer cur.Close(opCtx)

	var posts []model.Post
	if err := cur.All(opCtx, &posts); err != nil {
		return nil, perrors.Wrap(err, "decode posts")
	}
	sortTime := func(p model.Post) time.Time {
		if p.PublishedAt != nil {
			return *p.PublishedAt
		}
		return p.CreatedAt
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return sortTime(posts[i]).After(sortTime(posts[j]))
	})
	return posts, nil
}

func (r *PostRepo) GetPost(postId string) (*model.Post, error) {
	return r.findPost(bson.M{"post_id": postId})
}

func (r *PostRepo) GetPostBySlug(slug string) (*model.Post, error) {
	return r.findPost(bson.M{"slug": slug, "published": true})
}

func (r *PostRepo) CreatePost(post *model.Post) (string, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	post.PostId = id.GetXid()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	if _, err := r.coll().InsertOne(opCtx, post); err != nil {
		return "", perrors.Wrap(err, "create post")
	}
	return post.PostId, nil
}

func (r *PostRepo) UpdatePost(postId string, req model.PostReq) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	now := time.Now()
	set := bson.M{
		"slug":       req.Slug,
		"title":      req.Title,
		"body":       req.Body,
		"tags":       req.Tags,
		"updated_at": now,
	}
	if req.Published != nil {
		set["published"] = *req.Published
		if *req.Published {
			// 首次发布时补打 published_at，重复发布不回拨
			existing, err := r.GetPost(postId)
			if err != nil {
				return err
			}
			if existing != nil && existing.PublishedAt == nil {
				set["published_at"] = now
			}
		}
	}
	res, err := r.coll().UpdateOne(opCtx, bson.M{"post_id": postId}, bson.M{"$set": set})
	if err != nil {
		return perrors.Wrap(err, "update post")
	}
	if res.MatchedCount == 0 {
		return perrors.Errorf("post %s not found", postId)
	}
	return nil
}

func (r *PostRepo) DeletePost(postId string) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	if _, err := r.coll().DeleteOne(opCtx, bson.M{"post_id": postId}); err != nil {
		return perrors.Wrap(err, "delete post")
	}
	return nil
}

func (r *PostRepo) findPost(filter bson.M) (*model.Post, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	var post model.Post
	err := r.coll().FindOne(opCtx, filter).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "get post")
	}
	return &post, nil
}
