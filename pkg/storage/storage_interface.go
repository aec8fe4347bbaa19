package storage

import (
	"mime/multipart"

	"github.com/logbase-dev/atsignal/pkg/ctx"
)

// StorageProvider 对象存储抽象。Delete 对不存在的对象返回成功。
type StorageProvider interface {
	PutObject(ctx *ctx.Context, objectName string, file *multipart.FileHeader, contentType string) (string, error)
	GetObject(ctx *ctx.Context, objectName string) ([]byte, error)
	Delete(ctx *ctx.Context, objectName string) error
}
