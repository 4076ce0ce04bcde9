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

// Project is a collaboration space owning tickets and a member list.
// The owner is never stored as a member row.
type Project struct {
	BaseModel
	ProjectId   string `gorm:"column:project_id;uniqueIndex;type:varchar(64)" json:"projectId"`
	Name        string `gorm:"column:name;type:varchar(128)" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Color       string `gorm:"column:color;type:varchar(32)" json:"color"`
	OwnerId     string `gorm:"column:owner_id;index;type:varchar(64)" json:"ownerId"`
	IsArchived  bool   `gorm:"column:is_archived" json:"isArchived"`
}

func (Project) TableName() string {
	return "t_project"
}

// ProjectMember is one row per (project, member). Membership grants
// the same read/write access as ownership except for owner-only
// operations (update, member management, archive).
type ProjectMember struct {
	BaseModel
	ProjectId string `gorm:"column:project_id;index:idx_project_user,unique;type:varchar(64)" json:"projectId"`
	UserId    string `gorm:"column:user_id;index:idx_project_user,unique;index;type:varchar(64)" json:"userId"`
}

func (ProjectMember) TableName() string {
	return "t_project_member"
}

// ProjectDetail is a project with its member ids resolved for API
// responses.
type ProjectDetail struct {
	Project
	MemberIds []string `json:"memberIds"`
}

// CreateProjectReq creates a project owned by the caller.
type CreateProjectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateProjectReq patches a project; only provided fields change.
type UpdateProjectReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// AddMemberReq adds a member resolved by email.
type AddMemberReq struct {
	MemberEmail string `json:"memberEmail"`
}
