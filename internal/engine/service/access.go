package service

import (
	"fmt"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
)

// canAccess reports whether the actor is the project's owner or one of
// its members. Every read and write against project-scoped data goes
// through this gate.
func canAccess(st repo.Store, actorId string, project *model.Project) (bool, error) {
	if project == nil || actorId == "" {
		return false, nil
	}
	if project.OwnerId == actorId {
		return true, nil
	}
	isMember, err := st.Projects().IsProjectMember(project.ProjectId, actorId)
	if err != nil {
		return false, fmt.Errorf("check project membership: %w", err)
	}
	return isMember, nil
}

// accessibleProject loads a project the actor may touch. It returns
// (nil, nil) when the project is absent or out of reach; the caller
// decides whether that degrades to an empty result or ErrAccessDenied.
func accessibleProject(st repo.Store, actorId, projectId string) (*model.Project, error) {
	project, err := st.Projects().GetProject(projectId)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	ok, err := canAccess(st, actorId, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return project, nil
}

// accessibleProjectIds computes the set of project ids the actor can
// currently access, owned plus member.
func accessibleProjectIds(st repo.Store, actorId string) ([]string, []model.Project, error) {
	owned, err := st.Projects().ListProjectsByOwner(actorId)
	if err != nil {
		return nil, nil, fmt.Errorf("list owned projects: %w", err)
	}
	memberIds, err := st.Projects().ListMemberProjectIds(actorId)
	if err != nil {
		return nil, nil, fmt.Errorf("list member projects: %w", err)
	}
	memberProjects, err := st.Projects().ListProjectsByIds(memberIds)
	if err != nil {
		return nil, nil, fmt.Errorf("load member projects: %w", err)
	}

	projects := append(owned, memberProjects...)
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ProjectId)
	}
	return ids, projects, nil
}
