package repo

import (
	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type IUserSettingsRepository interface {
	// GetByUser returns (nil, nil) when the user never persisted a
	// settings row.
	GetByUser(userId string) (*model.UserSettings, error)
	CreateSettings(settings *model.UserSettings) error
	UpdateSettingsFields(userId string, updates map[string]any) error
}

type UserSettingsRepo struct {
	db *gorm.DB
}

func NewUserSettingsRepo(db *gorm.DB) *UserSettingsRepo {
	return &UserSettingsRepo{db: db}
}

func (r *UserSettingsRepo) GetByUser(userId string) (*model.UserSettings, error) {
	var settings model.UserSettings
	return firstOrNil(r.db.Where("user_id = ?", userId), &settings)
}

func (r *UserSettingsRepo) CreateSettings(settings *model.UserSettings) error {
	return r.db.Create(settings).Error
}

func (r *UserSettingsRepo) UpdateSettingsFields(userId string, updates map[string]any) error {
	return r.db.Model(&model.UserSettings{}).
		Where("user_id = ?", userId).
		Updates(updates).Error
}
