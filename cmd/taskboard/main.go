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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-taskboard/taskboard/internal/engine/config"
	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/internal/engine/router"
	"github.com/go-taskboard/taskboard/internal/engine/service"
	"github.com/go-taskboard/taskboard/internal/pkg/notify"
	"github.com/go-taskboard/taskboard/pkg/cache"
	"github.com/go-taskboard/taskboard/pkg/ctx"
	"github.com/go-taskboard/taskboard/pkg/database"
	"github.com/go-taskboard/taskboard/pkg/log"
	"github.com/go-taskboard/taskboard/pkg/version"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:          "taskboard",
		Short:        "Taskboard is a project and ticket collaboration backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "conf.d/config.toml", "path to the config file")
	root.AddCommand(version.VersionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	log.MustInit(&conf.Log)

	db, err := database.NewDatabase(conf.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.OtpCode{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Ticket{},
		&model.Activity{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	rds, err := cache.NewRedis(conf.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	appCtx := ctx.NewContext(context.Background(), db, rds, log.GetLogger())
	store := repo.NewStore(appCtx)

	gateway := notify.NewGateway(conf.Notify, store)
	services := service.NewServices(appCtx, conf.Http.Auth, gateway)

	digest := notify.NewDigest(gateway, services.Activity)
	if err := digest.Start(); err != nil {
		return err
	}
	defer digest.Stop()

	app := router.NewRouter(appCtx, &conf.Http, services).App()

	addr := fmt.Sprintf("%s:%d", conf.Http.Host, conf.Http.Port)
	errCh := make(chan error, 1)
	go func() {
		if conf.Http.TLS.CertFile != "" && conf.Http.TLS.KeyFile != "" {
			errCh <- app.ListenTLS(addr, conf.Http.TLS.CertFile, conf.Http.TLS.KeyFile)
			return
		}
		errCh <- app.Listen(addr)
	}()
	log.Infof("taskboard listening on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Infof("received signal %s, shutting down", sig)
	}

	shutdownTimeout := time.Duration(conf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("http shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rds.Close()
	return nil
}
