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

type ticketRouter struct {
	tickets *service.TicketService
}

func newTicketRouter(tickets *service.TicketService) *ticketRouter {
	return &ticketRouter{tickets: tickets}
}

func (r *ticketRouter) mount(api fiber.Router, required, optional fiber.Handler) {
	tickets := api.Group("/tickets")
	tickets.Post("/", required, r.create)
	tickets.Get("/:ticketId", optional, r.get)
	tickets.Put("/:ticketId", required, r.update)
	tickets.Put("/:ticketId/position", required, r.updatePosition)
}

func (r *ticketRouter) create(c *fiber.Ctx) error {
	var req model.CreateTicketReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	ticket, err := r.tickets.CreateTicket(actorId(c), &req)
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, ticket)
	return nil
}

func (r *ticketRouter) get(c *fiber.Ctx) error {
	ticket, err := r.tickets.GetTicket(actorId(c), c.Params("ticketId"))
	if err != nil {
		return replyErr(c, err)
	}
	if ticket == nil {
		return httpx.WithRepJSON(c, nil)
	}
	c.Locals(middleware.DETAIL, ticket)
	return nil
}

func (r *ticketRouter) update(c *fiber.Ctx) error {
	var req model.UpdateTicketReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.tickets.UpdateTicket(actorId(c), c.Params("ticketId"), &req); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "updateTicket")
	return nil
}

func (r *ticketRouter) updatePosition(c *fiber.Ctx) error {
	var req model.UpdatePositionReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, httpx.RequestParameterParsingFailed.Msg, c.Path())
	}
	if err := r.tickets.UpdatePosition(actorId(c), c.Params("ticketId"), &req); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "updatePosition")
	return nil
}
