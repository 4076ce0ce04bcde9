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

package notify

import (
	"fmt"
	"time"

	"github.com/robfig/cron"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/pkg/id"
	"github.com/go-taskboard/taskboard/pkg/log"
)

const digestWindow = 24 * time.Hour

// ActivityCounter counts a user's visible activity after an instant.
// The engine's activity service satisfies it.
type ActivityCounter interface {
	CountAccessibleSince(userId string, since time.Time) (int64, error)
}

// Digest produces one activity_digest notification per user per run,
// summarizing activity across their projects in the last day. Users
// with no activity get nothing.
type Digest struct {
	gateway    *Gateway
	activities ActivityCounter
	cron       *cron.Cron
}

func NewDigest(gateway *Gateway, activities ActivityCounter) *Digest {
	return &Digest{gateway: gateway, activities: activities, cron: cron.New()}
}

// Start schedules the digest according to conf.digestSpec. An empty
// spec leaves the job disabled.
func (d *Digest) Start() error {
	spec := d.gateway.conf.DigestSpec
	if spec == "" {
		return nil
	}
	if err := d.cron.AddFunc(spec, d.run); err != nil {
		return fmt.Errorf("schedule digest %q: %w", spec, err)
	}
	d.cron.Start()
	log.Infof("activity digest scheduled: %s", spec)
	return nil
}

func (d *Digest) Stop() {
	d.cron.Stop()
}

func (d *Digest) run() {
	store := d.gateway.store
	users, err := store.Users().ListUsers()
	if err != nil {
		log.Errorw("digest user listing failed", "error", err)
		return
	}
	since := time.Now().Add(-digestWindow)

	for _, user := range users {
		count, err := d.activities.CountAccessibleSince(user.UserId, since)
		if err != nil {
			log.Warnw("digest count failed", "userId", user.UserId, "error", err)
			continue
		}
		if count == 0 {
			continue
		}

		notification := &model.Notification{
			NotificationId: id.GetULID(),
			UserId:         user.UserId,
			Type:           model.NotificationActivityDigest,
			Title:          "Daily Digest",
			Message:        fmt.Sprintf("There were %d updates across your projects in the last 24 hours", count),
		}
		if err := store.Notifications().CreateNotification(notification); err != nil {
			log.Warnw("digest notification insert failed", "userId", user.UserId, "error", err)
			continue
		}
		d.gateway.NotificationCreated(notification)
	}
}
