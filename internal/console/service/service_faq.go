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
	"strings"

	"github.com/logbase-dev/atsignal/internal/console/model"
	"github.com/logbase-dev/atsignal/internal/console/repo"
)

// FaqService FAQ 管理
type FaqService struct {
	faqs repo.IFaqRepository
}

func NewFaqService(faqs repo.IFaqRepository) *FaqService {
	return &FaqService{faqs: faqs}
}

func (s *FaqService) List(site string) ([]model.Faq, error) {
	if !model.IsValidSite(site) {
		return nil, invalidf("unknown site: %s", site)
	}
	return s.faqs.ListFaqs(site, false)
}

func (s *FaqService) Create(req model.FaqReq) (string, error) {
	if err := validateFaq(&req); err != nil {
		return "", err
	}
	faq := &model.Faq{
		Site:     req.Site,
		Category: req.Category,
		Question: req.Question,
		Answer:   req.Answer,
	}
	if req.Order != nil {
		faq.Order = *req.Order
	}
	if req.Published != nil {
		faq.Published = *req.Published
	}
	return s.faqs.CreateFaq(faq)
}

func (s *FaqService) Update(faqId string, req model.FaqReq) error {
	if err := validateFaq(&req); err != nil {
		return err
	}
	existing, err := s.faqs.GetFaq(faqId)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.faqs.UpdateFaq(faqId, req)
}

func (s *FaqService) Delete(faqId string) error {
	existing, err := s.faqs.GetFaq(faqId)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.faqs.DeleteFaq(faqId)
}

func validateFaq(req *model.FaqReq) error {
	if !model.IsValidSite(req.Site) {
		return invalidf("unknown site: %s", req.Site)
	}
	if strings.TrimSpace(req.Question[model.PrimaryLocale]) == "" {
		return invalidf("question for primary locale %q is required", model.PrimaryLocale)
	}
	if strings.TrimSpace(req.Answer[model.PrimaryLocale]) == "" {
		return invalidf("answer for primary locale %q is required", model.PrimaryLocale)
	}
	return nil
}
