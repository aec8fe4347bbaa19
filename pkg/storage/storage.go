package storage

import (
	"fmt"
	"strings"

	"github.com/google/wire"
)

// ProviderSet 提供存储相关的依赖
var ProviderSet = wire.NewSet(NewStorage)

// 存储类型常量
const (
	StorageMinio = "minio"
	StorageS3    = "s3"
)

// 图片尺寸变体，对应存储路径 images/{variant}/{file}
const (
	ImageBasePath    = "images"
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
	VariantOriginal  = "original"
)

// ImageVariants 所有已知尺寸变体
var ImageVariants = []string{VariantThumbnail, VariantMedium, VariantLarge, VariantOriginal}

// Storage 存储配置结构
type Storage struct {
	Provider  string
	AccessKey string
	SecretKey string
	Endpoint  string
	Bucket    string
	Region    string
	UseTLS    bool
	BasePath  string
	PublicURL string // 对外可访问的基础 URL
}

// NewStorage 根据配置创建存储提供者实例
func NewStorage(s *Storage) (StorageProvider, error) {
	switch s.Provider {
	case StorageMinio:
		return newMinio(s)
	case StorageS3:
		return newS3(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// ImagePath 拼接尺寸变体存储路径
func ImagePath(variant, fileName string) string {
	return ImageBasePath + "/" + variant + "/" + fileName
}

func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(objectName, "/")
}
