package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 存储层单次操作的超时时间，超时作为独立错误类别上报
const opTimeout = 5 * time.Second

type MongoDB struct {
	Uri         string
	DB          string
	Compressors []string
	PoolSize    uint64
}

// MongoClient 包装 MongoDB 客户端和数据库
type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoDB(cfg MongoDB, ctx context.Context) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	clientOption := options.Client().ApplyURI(cfg.Uri)
	if len(cfg.Compressors) > 0 {
		clientOption.SetCompressors(cfg.Compressors)
	}
	if cfg.PoolSize > 0 {
		clientOption.SetMaxPoolSize(cfg.PoolSize)
	}
	client, err := mongo.Connect(ctx, clientOption)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoClient{
		Client: client,
		DB:     client.Database(cfg.DB),
	}, nil
}

// GetCollection 获取集合，无需再指定数据库
func (mc *MongoClient) GetCollection(name string) *mongo.Collection {
	return mc.DB.Collection(name)
}

// Close 关闭连接
func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}

// OpCtx returns a bounded context for a single store operation.
func OpCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, opTimeout)
}

// IsTimeout reports whether err is a store timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if err == context.DeadlineExceeded {
		return true
	}
	return mongo.IsTimeout(err)
}
