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

package bootstrap

import (
	"context"
	"time"

	"github.com/logbase-dev/atsignal/internal/console/conf"
	"github.com/logbase-dev/atsignal/internal/console/repo"
	"github.com/logbase-dev/atsignal/internal/console/router"
	"github.com/logbase-dev/atsignal/internal/console/service"
	"github.com/logbase-dev/atsignal/pkg/cache"
	"github.com/logbase-dev/atsignal/pkg/ctx"
	"github.com/logbase-dev/atsignal/pkg/database"
	httpx "github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/log"
	"github.com/logbase-dev/atsignal/pkg/storage"
)

// App 组装完成的应用
type App struct {
	Conf *conf.AppConfig
}

// Run 初始化全部依赖并启动 http 服务，返回清理函数
func Run(confDir string) (*App, func(), error) {
	cfg, err := conf.Load(confDir)
	if err != nil {
		return nil, nil, err
	}

	if err := log.Init(&cfg.Log); err != nil {
		return nil, nil, err
	}

	rootCtx := context.Background()

	mongo, err := database.NewMongoDB(cfg.MongoDB, rootCtx)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	redisCache := cache.NewRedisCache(redisClient)

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	appCtx := ctx.NewContext(rootCtx, mongo, redisCache, log.GetLogger())

	repos := repo.NewRepositories(appCtx)
	services := service.NewServices(appCtx, repos, store, &cfg.Storage, cfg.Preview, cfg.Newsletter)

	app := httpx.NewFiberApp(cfg.Http)
	rt := router.NewRouter(&cfg.Http, appCtx, services)
	rt.Register(app)

	stopHttp := httpx.NewHttp(cfg.Http, app)

	cleanup := func() {
		stopHttp()

		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			log.Errorf("close mongo: %v", err)
		}
		if err := redisClient.Close(); err != nil {
			log.Errorf("close redis: %v", err)
		}
		_ = log.Sync()
	}

	return &App{Conf: cfg}, cleanup, nil
}
