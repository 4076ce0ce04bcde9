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
	"github.com/go-taskboard/taskboard/pkg/log"
)

const defaultNotificationLimit = 50

// NotificationService reads and acknowledges the per-user inbox.
// Notifications are created by project and ticket mutations, never
// here.
type NotificationService struct {
	store repo.Store
}

func NewNotificationService(store repo.Store) *NotificationService {
	return &NotificationService{store: store}
}

// ListNotifications returns the actor's inbox, newest first.
func (s *NotificationService) ListNotifications(actorId string, unreadOnly bool, limit int) ([]model.Notification, error) {
	if actorId == "" {
		return []model.Notification{}, nil
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.store.Notifications().ListByUser(actorId, unreadOnly, limit)
}

// MarkAsRead acknowledges one notification. Marking an already read
// notification is a no-op. Other users' notifications look absent.
func (s *NotificationService) MarkAsRead(actorId, notificationId string) error {
	if actorId == "" {
		return ErrUnauthenticated
	}

	notification, err := s.store.Notifications().GetNotification(notificationId)
	if err != nil {
		return fmt.Errorf("get notification: %w", err)
	}
	if notification == nil || notification.UserId != actorId {
		log.Debugw("notification not visible", "notificationId", notificationId, "actor", actorId)
		return ErrNotificationNotFound
	}
	if notification.IsRead {
		return nil
	}
	return s.store.Notifications().MarkRead(notificationId)
}

// MarkAllAsRead acknowledges every unread notification and returns how
// many were flipped. Calling it again returns zero.
func (s *NotificationService) MarkAllAsRead(actorId string) (int64, error) {
	if actorId == "" {
		return 0, ErrUnauthenticated
	}
	updated, err := s.store.Notifications().MarkAllRead(actorId)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return updated, nil
}

// UnreadCount returns the badge count; zero for anonymous callers.
func (s *NotificationService) UnreadCount(actorId string) (int64, error) {
	if actorId == "" {
		return 0, nil
	}
	return s.store.Notifications().CountUnread(actorId)
}
