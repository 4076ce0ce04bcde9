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
	"time"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
)

const (
	defaultProjectFeedLimit = 50
	defaultRecentFeedLimit  = 20
)

// ActivityService reads the append-only activity log. Activities are
// never written here; each mutation appends its own record inside its
// transaction.
type ActivityService struct {
	store repo.Store
}

func NewActivityService(store repo.Store) *ActivityService {
	return &ActivityService{store: store}
}

// ListByProject returns a project's feed, newest first, enriched with
// the acting user's display fields. Callers without access get an
// empty list.
func (s *ActivityService) ListByProject(actorId, projectId string, limit int) ([]model.ActivityDetail, error) {
	details := []model.ActivityDetail{}
	if actorId == "" {
		return details, nil
	}
	project, err := accessibleProject(s.store, actorId, projectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return details, nil
	}
	if limit <= 0 {
		limit = defaultProjectFeedLimit
	}

	activities, err := s.store.Activities().ListByProject(projectId, limit)
	if err != nil {
		return nil, fmt.Errorf("list project activity: %w", err)
	}
	return s.enrich(activities, nil)
}

// ListRecent returns the newest activity across every project the
// actor can access right now. Access is evaluated at read time, so
// records from projects the actor has left drop out of the feed.
func (s *ActivityService) ListRecent(actorId string, limit int) ([]model.ActivityDetail, error) {
	details := []model.ActivityDetail{}
	if actorId == "" {
		return details, nil
	}
	if limit <= 0 {
		limit = defaultRecentFeedLimit
	}

	projectIds, projects, err := accessibleProjectIds(s.store, actorId)
	if err != nil {
		return nil, err
	}
	if len(projectIds) == 0 {
		return details, nil
	}

	activities, err := s.store.Activities().ListByProjects(projectIds, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}

	byProject := make(map[string]model.Project, len(projects))
	for _, p := range projects {
		byProject[p.ProjectId] = p
	}
	return s.enrich(activities, byProject)
}

// CountAccessibleSince counts activity in the user's projects after
// the given instant. The daily digest is built from this.
func (s *ActivityService) CountAccessibleSince(userId string, since time.Time) (int64, error) {
	if userId == "" {
		return 0, nil
	}
	projectIds, _, err := accessibleProjectIds(s.store, userId)
	if err != nil {
		return 0, err
	}
	if len(projectIds) == 0 {
		return 0, nil
	}
	return s.store.Activities().CountByProjectsSince(projectIds, since)
}

// enrich joins actor display fields onto each record, plus project
// name and color when a project map is supplied. Records whose actor
// no longer exists keep a nil User.
func (s *ActivityService) enrich(activities []model.Activity, projects map[string]model.Project) ([]model.ActivityDetail, error) {
	userIds := make([]string, 0, len(activities))
	seen := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		if _, ok := seen[a.UserId]; ok {
			continue
		}
		seen[a.UserId] = struct{}{}
		userIds = append(userIds, a.UserId)
	}

	users, err := s.store.Users().ListUsersByIds(userIds)
	if err != nil {
		return nil, fmt.Errorf("load activity actors: %w", err)
	}
	byId := make(map[string]model.User, len(users))
	for _, u := range users {
		byId[u.UserId] = u
	}

	details := make([]model.ActivityDetail, 0, len(activities))
	for _, a := range activities {
		detail := model.ActivityDetail{Activity: a}
		if u, ok := byId[a.UserId]; ok {
			detail.User = &model.ActorInfo{Name: u.Name, Email: u.Email}
		}
		if projects != nil {
			if p, ok := projects[a.ProjectId]; ok {
				detail.Project = &model.ProjectInfo{Name: p.Name, Color: p.Color}
			}
		}
		details = append(details, detail)
	}
	return details, nil
}
