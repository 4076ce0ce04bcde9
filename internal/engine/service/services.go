package service

import (
	"github.com/go-taskboard/taskboard/internal/engine/repo"
	"github.com/go-taskboard/taskboard/pkg/ctx"
	"github.com/go-taskboard/taskboard/pkg/http"
)

// Services bundles the engine services for the router.
type Services struct {
	User         *UserService
	Project      *ProjectService
	Ticket       *TicketService
	Activity     *ActivityService
	Notification *NotificationService
}

func NewServices(appCtx *ctx.Context, auth http.Auth, dispatcher Dispatcher) *Services {
	store := repo.NewStore(appCtx)
	return &Services{
		User:         NewUserService(store, appCtx, auth, dispatcher),
		Project:      NewProjectService(store, dispatcher),
		Ticket:       NewTicketService(store, dispatcher),
		Activity:     NewActivityService(store),
		Notification: NewNotificationService(store),
	}
}
