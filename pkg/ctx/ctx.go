package ctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/logbase-dev/atsignal/pkg/cache"
	"github.com/logbase-dev/atsignal/pkg/database"
)

// Context 全局上下文，携带 Mongo、Redis 与日志实例
type Context struct {
	Mongo *database.MongoClient
	Redis cache.ICache
	Ctx   context.Context
	Log   *zap.SugaredLogger
}

func NewContext(ctx context.Context, mongo *database.MongoClient, redis cache.ICache, log *zap.SugaredLogger) *Context {
	return &Context{
		Mongo: mongo,
		Redis: redis,
		Ctx:   ctx,
		Log:   log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetMongo() *database.MongoClient {
	return c.Mongo
}

func (c *Context) GetRedis() cache.ICache {
	return c.Redis
}
