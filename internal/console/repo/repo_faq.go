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

type IFaqRepository interface {
	// ListFaqs site 下全部条目，按 category、order 排序；
	// publishedOnly 为 true 时只返回已发布条目
	ListFaqs(site string, publishedOnly bool) ([]model.Faq, error)
	GetFaq(faqId string) (*model.Faq, error)
	CreateFaq(faq *model.Faq) (string, error)
	UpdateFaq(faqId string, req model.FaqReq) error
	DeleteFaq(faqId string) error
}

type FaqRepo struct {
	appCtx *ctx.Context
}

func NewFaqRepo(appCtx *ctx.Context) IFaqRepository {
	return &FaqRepo{appCtx: appCtx}
}

func (r *FaqRepo) coll() *mongo.Collection {
	return r.appCtx.GetMongo().GetCollection(collFaqs)
}

func (r *FaqRepo) ListFaqs(site string, publishedOnly bool) ([]model.Faq, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	filter := bson.M{"site": site}
	if publishedOnly {
		filter["published"] = true
	}
	cur, err := r.coll().Find(opCtx, filter)
	if err != nil {
		return nil, perrors.Wrap(err, "list faqs")
	}
	defer cur.Close(opCtx)

	var faqs []model.Faq
	if err := cur.All(opCtx, &faqs); err != nil {
		return nil, perrors.Wrap(err, "decode faqs")
	}
	sort.SliceStable(faqs, func(i, j int) bool {
		if faqs[i].Category != faqs[j].Category {
			return faqs[i].Category < faqs[j].Category
		}
		return faqs[i].Order < faqs[j].Order
	})
	return faqs, nil
}

func (r *FaqRepo) GetFaq(faqId string) (*model.Faq, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	var faq model.Faq
	err := r.coll().FindOne(opCtx, bson.M{"faq_id": faqId}).Decode(&faq)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.Wrap(err, "get faq")
	}
	return &faq, nil
}

func (r *FaqRepo) CreateFaq(faq *model.Faq) (string, error) {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	faq.FaqId = id.GetXid()
	now := time.Now()
	faq.CreatedAt = now
	faq.UpdatedAt = now
	if _, err := r.coll().InsertOne(opCtx, faq); err != nil {
		return "", perrors.Wrap(err, "create faq")
	}
	return faq.FaqId, nil
}

func (r *FaqRepo) UpdateFaq(faqId string, req model.FaqReq) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	set := bson.M{
		"category":   req.Category,
		"question":   req.Question,
		"answer":     req.Answer,
		"updated_at": time.Now(),
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}
	if req.Published != nil {
		set["published"] = *req.Published
	}
	res, err := r.coll().UpdateOne(opCtx, bson.M{"faq_id": faqId}, bson.M{"$set": set})
	if err != nil {
		return perrors.Wrap(err, "update faq")
	}
	if res.MatchedCount == 0 {
		return perrors.Errorf("faq %s not found", faqId)
	}
	return nil
}

func (r *FaqRepo) DeleteFaq(faqId string) error {
	opCtx, cancel := database.OpCtx(r.appCtx.GetCtx())
	defer cancel()

	if _, err := r.coll().DeleteOne(opCtx, bson.M{"faq_id": faqId}); err != nil {
		return perrors.Wrap(err, "delete faq")
	}
	return nil
}
