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

package service

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/id"
	"github.com/go-taskboard/taskboard/pkg/log"
)

// TicketService owns the ticket board. Creation places the ticket at
// the bottom of its project, updates record a human readable diff and
// assignment changes notify the new assignee.
type TicketService struct {
	store      repo.Store
	dispatcher Dispatcher
}

func NewTicketService(store repo.Store, dispatcher Dispatcher) *TicketService {
	if dispatcher == nil {
		dispatcher = nopDispatcher{}
	}
	return &TicketService{store: store, dispatcher: dispatcher}
}

// CreateTicket inserts a ticket at position max+1 within the project.
// Any project member may create tickets.
func (s *TicketService) CreateTicket(actorId string, req *model.CreateTicketReq) (*model.Ticket, error) {
	if actorId == "" {
		return nil, ErrUnauthenticated
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: ticket title is required", ErrInvalidArgument)
	}
	status := req.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, priority)
	}

	ticket := &model.Ticket{
		TicketId:    id.GetUUID(),
		ProjectId:   req.ProjectId,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeId:  req.AssigneeId,
		CreatorId:   actorId,
		DueDate:     req.DueDate,
		Tags:        datatypes.NewJSONSlice(req.Tags),
	}

	var assigned *model.Notification
	err := s.store.Atomic(func(st repo.Store) error {
		project, err := accessibleProject(st, actorId, req.ProjectId)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrAccessDenied
		}

		// MaxPosition takes a row lock, so concurrent creates in the
		// same project serialize here and positions stay unique.
		maxPos, err := st.Tickets().MaxPosition(req.ProjectId)
		if err != nil {
			return fmt.Errorf("max position: %w", err)
		}
		ticket.Position = maxPos + 1

		if err := st.Tickets().CreateTicket(ticket); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}

		if err := st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityTicketCreated,
			UserId:     actorId,
			ProjectId:  req.ProjectId,
			TicketId:   ticket.TicketId,
			Details:    fmt.Sprintf("Created ticket %q", req.Title),
		}); err != nil {
			return err
		}

		if ticket.AssigneeId != "" && ticket.AssigneeId != actorId {
			assigned = assignmentNotification(ticket)
			return st.Notifications().CreateNotification(assigned)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if assigned != nil {
		s.dispatcher.NotificationCreated(assigned)
	}
	log.Infow("ticket created", "ticketId", ticket.TicketId, "projectId", req.ProjectId, "position", ticket.Position)
	return ticket, nil
}

// UpdateTicket patches the provided fields. Title, status, priority
// and assignee changes are named in the activity details; description,
// due date and tags are written whenever present without being diffed.
// A request that touches nothing writes nothing and records nothing.
func (s *TicketService) UpdateTicket(actorId, ticketId string, req *model.UpdateTicketReq) error {
	if actorId == "" {
		return ErrUnauthenticated
	}
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *req.Status)
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidArgument, *req.Priority)
	}
	if req.Title != nil && *req.Title == "" {
		return fmt.Errorf("%w: ticket title is required", ErrInvalidArgument)
	}

	var assigned *model.Notification
	err := s.store.Atomic(func(st repo.Store) error {
		ticket, err := st.Tickets().GetTicket(ticketId)
		if err != nil {
			return fmt.Errorf("get ticket: %w", err)
		}
		if ticket == nil {
			return ErrAccessDenied
		}
		project, err := accessibleProject(st, actorId, ticket.ProjectId)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrAccessDenied
		}

		updates := make(map[string]any)
		var changes []string

		if req.Title != nil && *req.Title != ticket.Title {
			changes = append(changes, fmt.Sprintf("title from %q to %q", ticket.Title, *req.Title))
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Status != nil && *req.Status != ticket.Status {
			changes = append(changes, fmt.Sprintf("status from %q to %q", ticket.Status, *req.Status))
			updates["status"] = *req.Status
		}
		if req.Priority != nil && *req.Priority != ticket.Priority {
			changes = append(changes, fmt.Sprintf("priority from %q to %q", ticket.Priority, *req.Priority))
			updates["priority"] = *req.Priority
		}
		if req.AssigneeId != nil && *req.AssigneeId != ticket.AssigneeId {
			changes = append(changes, "assignee")
			updates["assignee_id"] = *req.AssigneeId
		}
		if req.DueDate != nil {
			updates["due_date"] = *req.DueDate
		}
		if req.Tags != nil {
			updates["tags"] = datatypes.NewJSONSlice(*req.Tags)
		}

		if len(updates) == 0 {
			log.Debugw("ticket update is a no-op", "ticketId", ticketId)
			return nil
		}

		if err := st.Tickets().UpdateTicketFields(ticketId, updates); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}

		if err := st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityTicketUpdated,
			UserId:     actorId,
			ProjectId:  ticket.ProjectId,
			TicketId:   ticketId,
			Details:    fmt.Sprintf("Updated ticket %q: %s", ticket.Title, strings.Join(changes, ", ")),
		}); err != nil {
			return err
		}

		if req.AssigneeId != nil && *req.AssigneeId != "" &&
			*req.AssigneeId != ticket.AssigneeId && *req.AssigneeId != actorId {
			after := *ticket
			after.AssigneeId = *req.AssigneeId
			if req.Title != nil {
				after.Title = *req.Title
			}
			assigned = assignmentNotification(&after)
			return st.Notifications().CreateNotification(assigned)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if assigned != nil {
		s.dispatcher.NotificationCreated(assigned)
	}
	return nil
}

// UpdatePosition moves a ticket inside the board, optionally across
// columns. Every move lands in the activity feed, naming the target
// column when one was given.
func (s *TicketService) UpdatePosition(actorId, ticketId string, req *model.UpdatePositionReq) error {
	if actorId == "" {
		return ErrUnauthenticated
	}
	if req.NewStatus != nil && !model.ValidStatus(*req.NewStatus) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *req.NewStatus)
	}

	return s.store.Atomic(func(st repo.Store) error {
		ticket, err := st.Tickets().GetTicket(ticketId)
		if err != nil {
			return fmt.Errorf("get ticket: %w", err)
		}
		if ticket == nil {
			return ErrAccessDenied
		}
		project, err := accessibleProject(st, actorId, ticket.ProjectId)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrAccessDenied
		}

		updates := map[string]any{"position": req.NewPosition}
		details := fmt.Sprintf("Moved ticket %q", ticket.Title)
		if req.NewStatus != nil {
			updates["status"] = *req.NewStatus
			details += fmt.Sprintf(" to %s", *req.NewStatus)
		}
		if err := st.Tickets().UpdateTicketFields(ticketId, updates); err != nil {
			return fmt.Errorf("move ticket: %w", err)
		}

		return st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityTicketMoved,
			UserId:     actorId,
			ProjectId:  ticket.ProjectId,
			TicketId:   ticketId,
			Details:    details,
		})
	})
}

// ListTickets returns the project's tickets in board order. Callers
// without access get an empty list.
func (s *TicketService) ListTickets(actorId, projectId string) ([]model.Ticket, error) {
	tickets := []model.Ticket{}
	if actorId == "" {
		return tickets, nil
	}
	project, err := accessibleProject(s.store, actorId, projectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return tickets, nil
	}
	return s.store.Tickets().ListTicketsByProject(projectId)
}

// GetTicket returns the ticket or nil when the actor cannot see its
// project.
func (s *TicketService) GetTicket(actorId, ticketId string) (*model.Ticket, error) {
	if actorId == "" {
		return nil, nil
	}
	ticket, err := s.store.Tickets().GetTicket(ticketId)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket == nil {
		return nil, nil
	}
	project, err := accessibleProject(s.store, actorId, ticket.ProjectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return ticket, nil
}

func assignmentNotification(ticket *model.Ticket) *model.Notification {
	return &model.Notification{
		NotificationId:   id.GetULID(),
		UserId:           ticket.AssigneeId,
		Type:             model.NotificationTicketAssigned,
		Title:            "Ticket Assigned",
		Message:          fmt.Sprintf("You've been assigned to ticket %q", ticket.Title),
		IsRead:           false,
		RelatedTicketId:  ticket.TicketId,
		RelatedProjectId: ticket.ProjectId,
	}
}
