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

// Package notify delivers notification emails through an external
// webhook. Delivery runs off the request path and never fails the
// mutation that produced the notification.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"

	"github.com/go-taskboard/taskboard/internal/engine/model"
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/id"
	"github.com/go-taskboard/taskboard/pkg/log"
)

// Conf configures the email webhook and the daily digest job. An empty
// webhookUrl disables email delivery; an empty digestSpec disables the
// digest.
type Conf struct {
	Enabled    bool   `mapstructure:"enabled"`
	WebhookUrl string `mapstructure:"webhookUrl"`
	Timeout    int    `mapstructure:"timeout"`
	DigestSpec string `mapstructure:"digestSpec"`
}

// emailPayload is the webhook request body. Id lets the receiver
// deduplicate retried deliveries.
type emailPayload struct {
	Id      string `json:"id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Type    string `json:"type,omitempty"`
}

// Gateway implements service.Dispatcher against the webhook.
type Gateway struct {
	conf   Conf
	store  repo.Store
	client *resty.Client
}

func NewGateway(conf Conf, store repo.Store) *Gateway {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 10
	}
	client := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")
	return &Gateway{conf: conf, store: store, client: client}
}

// NotificationCreated emails the notification to its recipient when
// their settings allow it, then stamps the delivery metadata onto the
// notification row.
func (g *Gateway) NotificationCreated(notification *model.Notification) {
	if !g.enabled() || notification == nil {
		return
	}
	go g.deliver(notification)
}

// OtpIssued emails a verification code. Codes are not persisted as
// notifications, so there is no metadata to stamp.
func (g *Gateway) OtpIssued(email, code string) {
	if !g.enabled() {
		return
	}
	go g.send(emailPayload{
		To:      email,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code),
	})
}

func (g *Gateway) enabled() bool {
	return g.conf.Enabled && g.conf.WebhookUrl != ""
}

func (g *Gateway) deliver(notification *model.Notification) {
	recipient, err := g.store.Users().GetUserById(notification.UserId)
	if err != nil || recipient == nil {
		log.Warnw("notification recipient not resolvable", "notificationId", notification.NotificationId, "error", err)
		return
	}

	settings, err := g.store.Settings().GetByUser(notification.UserId)
	if err != nil {
		log.Warnw("load recipient settings failed", "userId", notification.UserId, "error", err)
		return
	}
	// No settings row means the default, which has email on.
	if settings != nil && !settings.EmailNotifications {
		return
	}

	if !g.send(emailPayload{
		To:      recipient.Email,
		Subject: notification.Title,
		Body:    notification.Message,
		Type:    notification.Type,
	}) {
		return
	}

	meta, err := json.Marshal(model.EmailMeta{
		EmailSent:   true,
		EmailSentAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}
	if err := g.store.Notifications().UpdateMetadata(notification.NotificationId, datatypes.JSON(meta)); err != nil {
		log.Warnw("stamp email metadata failed", "notificationId", notification.NotificationId, "error", err)
	}
}

func (g *Gateway) send(payload emailPayload) bool {
	payload.Id = id.ShortId()
	resp, err := g.client.R().SetBody(payload).Post(g.conf.WebhookUrl)
	if err != nil {
		log.Warnw("email webhook failed", "to", payload.To, "error", err)
		return false
	}
	if resp.IsError() {
		log.Warnw("email webhook rejected", "to", payload.To, "status", resp.StatusCode())
		return false
	}
	log.Debugw("email dispatched", "to", payload.To, "subject", payload.Subject)
	return true
}
