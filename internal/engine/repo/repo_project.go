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

package repo

import (
	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type IProjectRepository interface {
	CreateProject(project *model.Project) error
	// GetProject returns (nil, nil) when no such project exists.
	GetProject(projectId string) (*model.Project, error)
	UpdateProjectFields(projectId string, updates map[string]any) error
	ListProjectsByOwner(ownerId string) ([]model.Project, error)
	ListProjectsByIds(projectIds []string) ([]model.Project, error)

	AddProjectMember(member *model.ProjectMember) error
	RemoveProjectMember(projectId, userId string) error
	IsProjectMember(projectId, userId string) (bool, error)
	ListProjectMembers(projectId string) ([]model.ProjectMember, error)
	// ListMemberProjectIds returns the ids of projects where the user
	// has a member row (ownership not included).
	ListMemberProjectIds(userId string) ([]string, error)
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) CreateProject(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepo) GetProject(projectId string) (*model.Project, error) {
	var project model.Project
	return firstOrNil(r.db.Where("project_id = ?", projectId), &project)
}

func (r *ProjectRepo) UpdateProjectFields(projectId string, updates map[string]any) error {
	return r.db.Model(&model.Project{}).
		Where("project_id = ?", projectId).
		Updates(updates).Error
}

func (r *ProjectRepo) ListProjectsByOwner(ownerId string) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.Where("owner_id = ?", ownerId).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) ListProjectsByIds(projectIds []string) ([]model.Project, error) {
	var projects []model.Project
	if len(projectIds) == 0 {
		return projects, nil
	}
	err := r.db.Where("project_id IN ?", projectIds).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) AddProjectMember(member *model.ProjectMember) error {
	return r.db.Create(member).Error
}

func (r *ProjectRepo) RemoveProjectMember(projectId, userId string) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectId, userId).
		Delete(&model.ProjectMember{}).Error
}

func (r *ProjectRepo) IsProjectMember(projectId, userId string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectId, userId).
		Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepo) ListProjectMembers(projectId string) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := r.db.Where("project_id = ?", projectId).Order("id ASC").Find(&members).Error
	return members, err
}

func (r *ProjectRepo) ListMemberProjectIds(userId string) ([]string, error) {
	var projectIds []string
	err := r.db.Model(&model.ProjectMember{}).
		Where("user_id = ?", userId).
		Pluck("project_id", &projectIds).Error
	return projectIds, err
}
