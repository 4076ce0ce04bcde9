// Copyright 2026 Taskboard Team
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

package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/go-taskboard/taskboard/internal/pkg/notify"
	"github.com/go-taskboard/taskboard/pkg/cache"
	"github.com/go-taskboard/taskboard/pkg/database"
	httpx "github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/log"
)

// AppConfig is the process configuration loaded from the config file.
type AppConfig struct {
	Log      log.Conf          `mapstructure:"log"`
	Http     httpx.Http        `mapstructure:"http"`
	Database database.Database `mapstructure:"database"`
	Redis    cache.Redis       `mapstructure:"redis"`
	Notify   notify.Conf       `mapstructure:"notify"`
}

var (
	conf *AppConfig
	mu   sync.RWMutex
)

// LoadConfig reads the config file, unmarshals it and watches it for
// changes. Reload replaces the cached config; components pick up new
// values on their next GetConfig call.
func LoadConfig(configFile string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configFile, err)
	}

	c := new(AppConfig)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		next := new(AppConfig)
		if err := v.Unmarshal(next); err != nil {
			log.Errorf("reload config %s failed: %v", e.Name, err)
			return
		}
		mu.Lock()
		conf = next
		mu.Unlock()
		log.Infof("config reloaded from %s", e.Name)
	})
	v.WatchConfig()

	mu.Lock()
	conf = c
	mu.Unlock()
	return c, nil
}

// GetConfig returns the currently loaded configuration.
func GetConfig() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}
