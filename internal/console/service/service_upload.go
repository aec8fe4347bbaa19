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
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/id"
	"github.com/logbase-dev/atsignal/pkg/storage"
)

// 允许上传的图片扩展名
var allowedImageExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// UploadService 编辑器图片上传。原图写入 images/original/，
// 其余尺寸变体由外部的缩放管线生成。
type UploadService struct {
	appCtx     *ctx.Context
	store      storage.StorageProvider
	storageCfg *storage.Storage
}

func NewUploadService(appCtx *ctx.Context, store storage.StorageProvider, storageCfg *storage.Storage) *UploadService {
	return &UploadService{appCtx: appCtx, store: store, storageCfg: storageCfg}
}

// UploadImage 上传图片，返回可公开访问的 URL
func (s *UploadService) UploadImage(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", invalidf("unsupported image type: %s", ext)
	}

	objectName := storage.ImagePath(storage.VariantOriginal, id.GetXid()+ext)
	if _, err := s.store.PutObject(s.appCtx, objectName, file, contentType); err != nil {
		return "", err
	}
	return strings.TrimSuffix(s.storageCfg.PublicURL, "/") + "/" + objectName, nil
}
