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

package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/go-taskboard/taskboard/internal/engine/service"
	"github.com/go-taskboard/taskboard/pkg/ctx"
	httpx "github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/http/middleware"
	"github.com/go-taskboard/taskboard/pkg/version"
)

// Router wires the HTTP surface onto the engine services.
type Router struct {
	appCtx   *ctx.Context
	conf     *httpx.Http
	services *service.Services
}

func NewRouter(appCtx *ctx.Context, conf *httpx.Http, services *service.Services) *Router {
	return &Router{appCtx: appCtx, conf: conf, services: services}
}

// App builds the fiber application with the full middleware chain and
// all route groups mounted under the context path.
func (r *Router) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(r.conf.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(r.conf.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(r.conf.IdleTimeout) * time.Second,
	})

	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.RequestIdMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.AccessLogMiddleware(r.conf))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})
	if r.conf.ExposeMetrics {
		app.Use(middleware.MetricsMiddleware())
		app.Get("/metrics", func(c *fiber.Ctx) error {
			fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
			return nil
		})
	}
	if r.conf.PProf {
		app.Use(pprof.New())
	}

	api := app.Group(r.conf.ContextPath, middleware.UnifiedResponseMiddleware())

	auth := r.conf.Auth
	required := middleware.AuthorizationMiddleware(auth.SecretKey, auth.RedisKeyPrefix, r.appCtx.GetRedis())
	optional := middleware.OptionalAuthorizationMiddleware(auth.SecretKey, auth.RedisKeyPrefix, r.appCtx.GetRedis())

	newUserRouter(r.services.User).mount(api, required, optional)
	newProjectRouter(r.services.Project, r.services.Ticket, r.services.Activity).mount(api, required, optional)
	newTicketRouter(r.services.Ticket).mount(api, required, optional)
	newActivityRouter(r.services.Activity).mount(api, optional)
	newNotificationRouter(r.services.Notification).mount(api, required, optional)

	return app
}

// actorId returns the authenticated caller id, empty for anonymous
// requests on optional-auth routes.
func actorId(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.UserID).(string); ok {
		return v
	}
	return ""
}
