package repo

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

// IActivityRepository is an append-only sink; there is deliberately no
// update or delete.
type IActivityRepository interface {
	AppendActivity(activity *model.Activity) error
	// ListByProject returns the latest activities, newest first.
	ListByProject(projectId string, limit int) ([]model.Activity, error)
	// ListByProjects returns the latest activities across the given
	// projects, newest first.
	ListByProjects(projectIds []string, limit int) ([]model.Activity, error)
	// CountByProjectsSince counts activities across the given projects
	// recorded after the given instant.
	CountByProjectsSince(projectIds []string, since time.Time) (int64, error)
}

type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) AppendActivity(activity *model.Activity) error {
	return r.db.Create(activity).Error
}

func (r *ActivityRepo) ListByProject(projectId string, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.Where("project_id = ?", projectId).
		Order("activity_id DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepo) ListByProjects(projectIds []string, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	if len(projectIds) == 0 {
		return activities, nil
	}
	err := r.db.Where("project_id IN ?", projectIds).
		Order("activity_id DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepo) CountByProjectsSince(projectIds []string, since time.Time) (int64, error) {
	var count int64
	if len(projectIds) == 0 {
		return 0, nil
	}
	err := r.db.Model(&model.Activity{}).
		Where("project_id IN ? AND created_at >= ?", projectIds, since).
		Count(&count).Error
	return count, err
}
