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
	"github.com/gofiber/fiber/v2"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/service"
	httpx "github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/http/middleware"
)

type userRouter struct {
	users *service.UserService
}

func newUserRouter(users *service.UserService) *userRouter {
	return &userRouter{users: users}
}

func (r *userRouter) mount(api fiber.Router, required, optional fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", r.register)
	auth.Post("/verify", r.verifyEmail)
	auth.Post("/login", r.login)
	auth.Post("/logout", required, r.logout)

	users := api.Group("/users")
	users.Get("/current", optional, r.current)
	users.Put("/settings", required, r.updateSettings)
	users.Post("/super-user", required, r.toggleSuperUser)
}

func (r *userRouter) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	user, err := r.users.Register(&req)
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, user)
	return nil
}

func (r *userRouter) verifyEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.users.VerifyEmail(req.Email, req.Code); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "verifyEmail")
	return nil
}

func (r *userRouter) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if req.Email == "" || req.Password == "" {
		return httpx.WithRepErrMsg(c, httpx.EmailAndPasswordAreRequired.Code, httpx.EmailAndPasswordAreRequired.Msg, c.Path())
	}
	tokens, err := r.users.Login(&req)
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, tokens)
	return nil
}

func (r *userRouter) logout(c *fiber.Ctx) error {
	if err := r.users.Logout(actorId(c)); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "logout")
	return nil
}

func (r *userRouter) current(c *fiber.Ctx) error {
	current, err := r.users.Current(actorId(c))
	if err != nil {
		return replyErr(c, err)
	}
	if current == nil {
		return httpx.WithRepJSON(c, nil)
	}
	c.Locals(middleware.DETAIL, current)
	return nil
}

func (r *userRouter) updateSettings(c *fiber.Ctx) error {
	var req model.UpdateSettingsReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.users.UpdateSettings(actorId(c), &req); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "updateSettings")
	return nil
}

func (r *userRouter) toggleSuperUser(c *fiber.Ctx) error {
	var req model.ToggleSuperUserReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	enabled, err := r.users.ToggleSuperUser(actorId(c), req.Key)
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"isSuperUser": enabled})
	return nil
}
