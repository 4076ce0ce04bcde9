package repo

import (
	"gorm.io/gorm"

	"github.com/go-taskboard/taskboard/internal/engine/model"
)

type IUserRepository interface {
	CreateUser(user *model.User) error
	// GetUserById returns (nil, nil) when no such user exists.
	GetUserById(userId string) (*model.User, error)
	// GetUserByEmail returns (nil, nil) when no such user exists.
	GetUserByEmail(email string) (*model.User, error)
	ListUsersByIds(userIds []string) ([]model.User, error)
	ListUsers() ([]model.User, error)
}

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepo) GetUserById(userId string) (*model.User, error) {
	var user model.User
	return firstOrNil(r.db.Where("user_id = ?", userId), &user)
}

func (r *UserRepo) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	return firstOrNil(r.db.Where("email = ?", email), &user)
}

func (r *UserRepo) ListUsersByIds(userIds []string) ([]model.User, error) {
	var users []model.User
	if len(userIds) == 0 {
		return users, nil
	}
	err := r.db.Where("user_id IN ?", userIds).Find(&users).Error
	return users, err
}

func (r *UserRepo) ListUsers() ([]model.User, error) {
	var users []model.User
	err := r.db.Find(&users).Error
	return users, err
}
