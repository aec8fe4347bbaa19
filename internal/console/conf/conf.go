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

package conf

import (
	"github.com/logbase-dev/atsignal/internal/console/service"
	"github.com/logbase-dev/atsignal/pkg/cache"
	"github.com/logbase-dev/atsignal/pkg/conf"
	"github.com/logbase-dev/atsignal/pkg/database"
	"github.com/logbase-dev/atsignal/pkg/http"
	"github.com/logbase-dev/atsignal/pkg/log"
	"github.com/logbase-dev/atsignal/pkg/storage"
)

// AppConfig 应用配置聚合
type AppConfig struct {
	Http       http.Http
	Log        log.Conf
	MongoDB    database.MongoDB
	Redis      cache.Redis
	Storage    storage.Storage
	Preview    service.Preview
	Newsletter service.Newsletter
}

// Load 从 confDir 加载 config.toml
func Load(confDir string) (*AppConfig, error) {
	var cfg AppConfig
	if err := conf.LoadConfigFile(confDir, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
