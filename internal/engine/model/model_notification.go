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

// Notification kinds.
const (
	NotificationTicketAssigned    = "ticket_assigned"
	NotificationTicketUpdated     = "ticket_updated"
	NotificationProjectInvitation = "project_invitation"
	NotificationActivityDigest    = "activity_digest"
)

// Notification is a per-recipient inbox entry. It is produced only as
// a side effect of registry/workflow mutations (and the digest job),
// never directly by a caller. The only mutable field is IsRead.
type Notification struct {
	BaseModel
	NotificationId   string         `gorm:"column:notification_id;uniqueIndex;type:varchar(32)" json:"notificationId"`
	UserId           string         `gorm:"column:user_id;index:idx_user_read;type:varchar(64)" json:"userId"`
	Type             string         `gorm:"column:type;type:varchar(32)" json:"type"`
	Title            string         `gorm:"column:title;type:varchar(128)" json:"title"`
	Message          string         `gorm:"column:message;type:text" json:"message"`
	IsRead           bool           `gorm:"column:is_read;index:idx_user_read" json:"isRead"`
	RelatedProjectId string         `gorm:"column:related_project_id;type:varchar(64)" json:"relatedProjectId,omitempty"`
	RelatedTicketId  string         `gorm:"column:related_ticket_id;type:varchar(64)" json:"relatedTicketId,omitempty"`
	Metadata         datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Notification) TableName() string {
	return "t_notification"
}

// EmailMeta is the metadata stamped onto a notification after its
// email webhook dispatch.
type EmailMeta struct {
	EmailSent   bool  `json:"emailSent"`
	EmailSentAt int64 `json:"emailSentAt"`
}
