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

type projectRouter struct {
	projects   *service.ProjectService
	tickets    *service.TicketService
	activities *service.ActivityService
}

func newProjectRouter(projects *service.ProjectService, tickets *service.TicketService, activities *service.ActivityService) *projectRouter {
	return &projectRouter{projects: projects, tickets: tickets, activities: activities}
}

func (r *projectRouter) mount(api fiber.Router, required, optional fiber.Handler) {
	projects := api.Group("/projects")
	projects.Get("/", optional, r.list)
	projects.Post("/", required, r.create)
	projects.Get("/:projectId", optional, r.get)
	projects.Put("/:projectId", required, r.update)
	projects.Post("/:projectId/archive", required, r.archive)
	projects.Get("/:projectId/members", optional, r.listMembers)
	projects.Post("/:projectId/members", required, r.addMember)
	projects.Delete("/:projectId/members/:memberId", required, r.removeMember)
	projects.Get("/:projectId/tickets", optional, r.listTickets)
	projects.Get("/:projectId/activities", optional, r.listActivities)
}

func (r *projectRouter) list(c *fiber.Ctx) error {
	details, err := r.projects.ListProjects(actorId(c))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, details)
	return nil
}

func (r *projectRouter) create(c *fiber.Ctx) error {
	var req model.CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	project, err := r.projects.CreateProject(actorId(c), &req)
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, project)
	return nil
}

func (r *projectRouter) get(c *fiber.Ctx) error {
	detail, err := r.projects.GetProject(actorId(c), c.Params("projectId"))
	if err != nil {
		return replyErr(c, err)
	}
	if detail == nil {
		return httpx.WithRepJSON(c, nil)
	}
	c.Locals(middleware.DETAIL, detail)
	return nil
}

func (r *projectRouter) update(c *fiber.Ctx) error {
	var req model.UpdateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.projects.UpdateProject(actorId(c), c.Params("projectId"), &req); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "updateProject")
	return nil
}

func (r *projectRouter) archive(c *fiber.Ctx) error {
	if err := r.projects.ArchiveProject(actorId(c), c.Params("projectId")); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "archiveProject")
	return nil
}

func (r *projectRouter) listMembers(c *fiber.Ctx) error {
	members, err := r.projects.ListMembers(actorId(c), c.Params("projectId"))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, members)
	return nil
}

func (r *projectRouter) addMember(c *fiber.Ctx) error {
	var req model.AddMemberReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.projects.AddMember(actorId(c), c.Params("projectId"), req.MemberEmail); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "addMember")
	return nil
}

func (r *projectRouter) removeMember(c *fiber.Ctx) error {
	if err := r.projects.RemoveMember(actorId(c), c.Params("projectId"), c.Params("memberId")); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "removeMember")
	return nil
}

func (r *projectRouter) listTickets(c *fiber.Ctx) error {
	tickets, err := r.tickets.ListTickets(actorId(c), c.Params("projectId"))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, tickets)
	return nil
}

func (r *projectRouter) listActivities(c *fiber.Ctx) error {
	details, err := r.activities.ListByProject(actorId(c), c.Params("projectId"), c.QueryInt("limit"))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, details)
	return nil
}
