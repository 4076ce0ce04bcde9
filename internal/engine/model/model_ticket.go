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

package model

import (
	"gorm.io/datatypes"
)

// Ticket statuses. Transitions are advisory; any status is reachable
// from any other.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Ticket priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known ticket priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Ticket belongs to exactly one project. Position orders tickets
// within the project; it is not globally unique and ties resolve by
// insertion order at read time. DueDate is epoch milliseconds.
type Ticket struct {
	BaseModel
	TicketId    string                     `gorm:"column:ticket_id;uniqueIndex;type:varchar(64)" json:"ticketId"`
	ProjectId   string                     `gorm:"column:project_id;index;type:varchar(64)" json:"projectId"`
	Title       string                     `gorm:"column:title;type:varchar(255)" json:"title"`
	Description string                     `gorm:"column:description;type:text" json:"description"`
	Status      string                     `gorm:"column:status;index;type:varchar(16)" json:"status"`
	Priority    string                     `gorm:"column:priority;type:varchar(16)" json:"priority"`
	AssigneeId  string                     `gorm:"column:assignee_id;index;type:varchar(64)" json:"assigneeId,omitempty"`
	CreatorId   string                     `gorm:"column:creator_id;index;type:varchar(64)" json:"creatorId"`
	DueDate     *int64                     `gorm:"column:due_date" json:"dueDate,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Position    float64                    `gorm:"column:position" json:"position"`
}

func (Ticket) TableName() string {
	return "t_ticket"
}

// CreateTicketReq creates a ticket in a project the caller can access.
type CreateTicketReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectId   string   `json:"projectId"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	AssigneeId  string   `json:"assigneeId"`
	DueDate     *int64   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags"`
}

// UpdateTicketReq patches a ticket. Title, status, priority and
// assignee are diffed against the stored row; description, dueDate and
// tags are written whenever present.
type UpdateTicketReq struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	AssigneeId  *string   `json:"assigneeId,omitempty"`
	DueDate     *int64    `json:"dueDate,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// UpdatePositionReq moves a ticket on the board. Status is optional.
type UpdatePositionReq struct {
	NewPosition float64 `json:"newPosition"`
	NewStatus   *string `json:"newStatus,omitempty"`
}
