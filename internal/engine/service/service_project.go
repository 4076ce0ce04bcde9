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

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/id"
	"github.com/go-taskboard/taskboard/pkg/log"
)

// ProjectService owns project lifecycle and membership. Every mutation
// runs as one transaction that also appends the activity record and,
// for invitations, the member's notification.
type ProjectService struct {
	store      repo.Store
	dispatcher Dispatcher
}

func NewProjectService(store repo.Store, dispatcher Dispatcher) *ProjectService {
	if dispatcher == nil {
		dispatcher = nopDispatcher{}
	}
	return &ProjectService{store: store, dispatcher: dispatcher}
}

// CreateProject inserts a project owned by the actor with an empty
// member list.
func (s *ProjectService) CreateProject(actorId string, req *model.CreateProjectReq) (*model.Project, error) {
	if actorId == "" {
		return nil, ErrUnauthenticated
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidArgument)
	}

	project := &model.Project{
		ProjectId:   id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		OwnerId:     actorId,
		IsArchived:  false,
	}

	err := s.store.Atomic(func(st repo.Store) error {
		if err := st.Projects().CreateProject(project); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		return st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityProjectCreated,
			UserId:     actorId,
			ProjectId:  project.ProjectId,
			Details:    fmt.Sprintf("Created project %q", req.Name),
		})
	})
	if err != nil {
		log.Errorw("create project failed", "name", req.Name, "error", err)
		return nil, err
	}

	log.Infow("project created", "projectId", project.ProjectId, "owner", actorId)
	return project, nil
}

// UpdateProject applies the provided fields. Owner only; the activity
// names the project as it was before the patch.
func (s *ProjectService) UpdateProject(actorId, projectId string, req *model.UpdateProjectReq) error {
	if actorId == "" {
		return ErrUnauthenticated
	}

	err := s.store.Atomic(func(st repo.Store) error {
		project, err := st.Projects().GetProject(projectId)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}
		if project == nil || project.OwnerId != actorId {
			log.Debugw("project update rejected", "projectId", projectId, "actor", actorId, "missing", project == nil)
			return ErrAccessDenied
		}

		updates := make(map[string]any)
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Color != nil {
			updates["color"] = *req.Color
		}
		if len(updates) > 0 {
			if err := st.Projects().UpdateProjectFields(projectId, updates); err != nil {
				return fmt.Errorf("update project: %w", err)
			}
		}

		return st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityProjectUpdated,
			UserId:     actorId,
			ProjectId:  projectId,
			Details:    fmt.Sprintf("Updated project %q", project.Name),
		})
	})
	if err != nil {
		return err
	}

	log.Infow("project updated", "projectId", projectId, "actor", actorId)
	return nil
}

// AddMember resolves the email to a user, appends a member row and
// notifies the new member. Owner only. The owner cannot be added as a
// member of their own project.
func (s *ProjectService) AddMember(actorId, projectId, memberEmail string) error {
	if actorId == "" {
		return ErrUnauthenticated
	}

	var invitation *model.Notification
	err := s.store.Atomic(func(st repo.Store) error {
		project, err := st.Projects().GetProject(projectId)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}
		if project == nil || project.OwnerId != actorId {
			return ErrAccessDenied
		}

		member, err := st.Users().GetUserByEmail(memberEmail)
		if err != nil {
			return fmt.Errorf("resolve member email: %w", err)
		}
		if member == nil {
			return ErrUserNotFound
		}
		if member.UserId == project.OwnerId {
			return ErrAlreadyMember
		}
		isMember, err := st.Projects().IsProjectMember(projectId, member.UserId)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if isMember {
			return ErrAlreadyMember
		}

		if err := st.Projects().AddProjectMember(&model.ProjectMember{
			ProjectId: projectId,
			UserId:    member.UserId,
		}); err != nil {
			return fmt.Errorf("add member: %w", err)
		}

		if err := st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityMemberAdded,
			UserId:     actorId,
			ProjectId:  projectId,
			Details:    fmt.Sprintf("Added %s to the project", memberEmail),
		}); err != nil {
			return err
		}

		invitation = &model.Notification{
			NotificationId:   id.GetULID(),
			UserId:           member.UserId,
			Type:             model.NotificationProjectInvitation,
			Title:            "Added to Project",
			Message:          fmt.Sprintf("You've been added to project %q", project.Name),
			IsRead:           false,
			RelatedProjectId: projectId,
		}
		return st.Notifications().CreateNotification(invitation)
	})
	if err != nil {
		return err
	}

	s.dispatcher.NotificationCreated(invitation)
	log.Infow("member added", "projectId", projectId, "email", memberEmail)
	return nil
}

// RemoveMember deletes a member row. Owner only.
func (s *ProjectService) RemoveMember(actorId, projectId, memberId string) error {
	if actorId == "" {
		return ErrUnauthenticated
	}

	return s.store.Atomic(func(st repo.Store) error {
		project, err := st.Projects().GetProject(projectId)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}
		if project == nil || project.OwnerId != actorId {
			return ErrAccessDenied
		}

		isMember, err := st.Projects().IsProjectMember(projectId, memberId)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if !isMember {
			return ErrUserNotFound
		}

		if err := st.Projects().RemoveProjectMember(projectId, memberId); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		details := "Removed a member from the project"
		if member, err := st.Users().GetUserById(memberId); err == nil && member != nil {
			details = fmt.Sprintf("Removed %s from the project", member.Email)
		}

		return st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityMemberRemoved,
			UserId:     actorId,
			ProjectId:  projectId,
			Details:    details,
		})
	})
}

// ArchiveProject hides the project from listings. Owner only.
func (s *ProjectService) ArchiveProject(actorId, projectId string) error {
	if actorId == "" {
		return ErrUnauthenticated
	}

	return s.store.Atomic(func(st repo.Store) error {
		project, err := st.Projects().GetProject(projectId)
		if err != nil {
			return fmt.Errorf("get project: %w", err)
		}
		if project == nil || project.OwnerId != actorId {
			return ErrAccessDenied
		}

		if err := st.Projects().UpdateProjectFields(projectId, map[string]any{"is_archived": true}); err != nil {
			return fmt.Errorf("archive project: %w", err)
		}

		return st.Activities().AppendActivity(&model.Activity{
			ActivityId: id.GetULID(),
			Type:       model.ActivityProjectUpdated,
			UserId:     actorId,
			ProjectId:  projectId,
			Details:    fmt.Sprintf("Archived project %q", project.Name),
		})
	})
}

// ListProjects returns the non-archived projects where the actor is
// owner or member. Anonymous callers get an empty list.
func (s *ProjectService) ListProjects(actorId string) ([]model.ProjectDetail, error) {
	details := []model.ProjectDetail{}
	if actorId == "" {
		return details, nil
	}

	_, projects, err := accessibleProjectIds(s.store, actorId)
	if err != nil {
		return nil, err
	}

	for _, project := range projects {
		if project.IsArchived {
			continue
		}
		detail, err := s.withMemberIds(project)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// GetProject returns the project or nil when the actor has no access;
// absence and denial are indistinguishable to the caller.
func (s *ProjectService) GetProject(actorId, projectId string) (*model.ProjectDetail, error) {
	if actorId == "" {
		return nil, nil
	}
	project, err := accessibleProject(s.store, actorId, projectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}
	return s.withMemberIds(*project)
}

// ListMembers returns the project's members with display fields, the
// owner first. Inaccessible projects yield an empty list.
func (s *ProjectService) ListMembers(actorId, projectId string) ([]model.MemberInfo, error) {
	infos := []model.MemberInfo{}
	if actorId == "" {
		return infos, nil
	}
	project, err := accessibleProject(s.store, actorId, projectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return infos, nil
	}

	members, err := s.store.Projects().ListProjectMembers(projectId)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	memberIds := make([]string, 0, len(members)+1)
	memberIds = append(memberIds, project.OwnerId)
	for _, m := range members {
		memberIds = append(memberIds, m.UserId)
	}

	users, err := s.store.Users().ListUsersByIds(memberIds)
	if err != nil {
		return nil, fmt.Errorf("load member users: %w", err)
	}
	byId := make(map[string]model.User, len(users))
	for _, u := range users {
		byId[u.UserId] = u
	}

	for _, memberId := range memberIds {
		user, ok := byId[memberId]
		if !ok {
			continue
		}
		infos = append(infos, model.MemberInfo{
			UserId:  user.UserId,
			Name:    user.Name,
			Email:   user.Email,
			IsOwner: memberId == project.OwnerId,
		})
	}
	return infos, nil
}

func (s *ProjectService) withMemberIds(project model.Project) (*model.ProjectDetail, error) {
	members, err := s.store.Projects().ListProjectMembers(project.ProjectId)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	memberIds := make([]string, 0, len(members))
	for _, m := range members {
		memberIds = append(memberIds, m.UserId)
	}
	return &model.ProjectDetail{Project: project, MemberIds: memberIds}, nil
}
