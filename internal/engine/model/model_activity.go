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

// Activity event kinds.
const (
	ActivityTicketCreated  = "ticket_created"
	ActivityTicketUpdated  = "ticket_updated"
	ActivityTicketMoved    = "ticket_moved"
	ActivityTicketAssigned = "ticket_assigned"
	ActivityProjectCreated = "project_created"
	ActivityProjectUpdated = "project_updated"
	ActivityMemberAdded    = "member_added"
	ActivityMemberRemoved  = "member_removed"
)

// Activity is an append-only audit record written in the same
// transaction as the mutation it describes. Rows are never updated or
// deleted. The id is a ULID so ids sort in append order.
type Activity struct {
	BaseModel
	ActivityId string         `gorm:"column:activity_id;uniqueIndex;type:varchar(32)" json:"activityId"`
	Type       string         `gorm:"column:type;type:varchar(32)" json:"type"`
	UserId     string         `gorm:"column:user_id;index;type:varchar(64)" json:"userId"`
	ProjectId  string         `gorm:"column:project_id;index;type:varchar(64)" json:"projectId,omitempty"`
	TicketId   string         `gorm:"column:ticket_id;index;type:varchar(64)" json:"ticketId,omitempty"`
	Details    string         `gorm:"column:details;type:text" json:"details"`
	Metadata   datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Activity) TableName() string {
	return "t_activity"
}

// ActorInfo is the display shape of the acting user, resolved at read
// time rather than denormalized into storage.
type ActorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectInfo is the display shape of the activity's project.
type ProjectInfo struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ActivityDetail is an activity enriched with actor and, for recent
// feeds, project display fields.
type ActivityDetail struct {
	Activity
	User    *ActorInfo   `json:"user"`
	Project *ProjectInfo `json:"project,omitempty"`
}
