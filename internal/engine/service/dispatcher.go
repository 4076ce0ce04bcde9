package service

import (
	"github.com/go-taskboard/taskboard/internal/engine/model"
)

// Dispatcher receives events after their transaction has committed.
// Implementations must not block the request path and must never fail
// it; delivery is best effort.
type Dispatcher interface {
	NotificationCreated(notification *model.Notification)
	OtpIssued(email, code string)
}

// nopDispatcher is used when no gateway is configured.
type nopDispatcher struct{}

func (nopDispatcher) NotificationCreated(*model.Notification) {}
func (nopDispatcher) OtpIssued(string, string)                {}
