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
	"errors"

	"github.com/go-taskboard/taskboard/pkg/ctx"
	"gorm.io/gorm"
)

// Store aggregates the repositories. Atomic runs fn against a store
// bound to a single database transaction; every mutation pipeline
// (primary write + activity append + notification insert) goes through
// exactly one Atomic call so readers never observe partial effects.
type Store interface {
	Users() IUserRepository
	Projects() IProjectRepository
	Tickets() ITicketRepository
	Activities() IActivityRepository
	Notifications() INotificationRepository
	Settings() IUserSettingsRepository
	OtpCodes() IOtpRepository

	Atomic(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore builds the gorm-backed store from the process context.
func NewStore(appCtx *ctx.Context) Store {
	return &gormStore{db: appCtx.DBSession()}
}

func (s *gormStore) Users() IUserRepository                 { return &UserRepo{db: s.db} }
func (s *gormStore) Projects() IProjectRepository           { return &ProjectRepo{db: s.db} }
func (s *gormStore) Tickets() ITicketRepository             { return &TicketRepo{db: s.db} }
func (s *gormStore) Activities() IActivityRepository        { return &ActivityRepo{db: s.db} }
func (s *gormStore) Notifications() INotificationRepository { return &NotificationRepo{db: s.db} }
func (s *gormStore) Settings() IUserSettingsRepository      { return &UserSettingsRepo{db: s.db} }
func (s *gormStore) OtpCodes() IOtpRepository               { return &OtpRepo{db: s.db} }

func (s *gormStore) Atomic(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// firstOrNil maps gorm's record-not-found to a nil result so callers
// can conflate absence and denial without inspecting driver errors.
func firstOrNil[T any](tx *gorm.DB, dest *T) (*T, error) {
	err := tx.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dest, nil
}
