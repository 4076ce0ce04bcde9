package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-taskboard/taskboard/internal/engine/service"
	"github.com/go-taskboard/taskboard/pkg/http/middleware"
)

type notificationRouter struct {
	notifications *service.NotificationService
}

func newNotificationRouter(notifications *service.NotificationService) *notificationRouter {
	return &notificationRouter{notifications: notifications}
}

func (r *notificationRouter) mount(api fiber.Router, required, optional fiber.Handler) {
	notifications := api.Group("/notifications")
	notifications.Get("/", optional, r.list)
	notifications.Get("/unread-count", optional, r.unreadCount)
	notifications.Put("/read-all", required, r.markAllRead)
	notifications.Put("/:notificationId/read", required, r.markRead)
}

func (r *notificationRouter) list(c *fiber.Ctx) error {
	inbox, err := r.notifications.ListNotifications(actorId(c), c.QueryBool("unreadOnly"), c.QueryInt("limit"))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, inbox)
	return nil
}

func (r *notificationRouter) unreadCount(c *fiber.Ctx) error {
	count, err := r.notifications.UnreadCount(actorId(c))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"count": count})
	return nil
}

func (r *notificationRouter) markAllRead(c *fiber.Ctx) error {
	updated, err := r.notifications.MarkAllAsRead(actorId(c))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"updated": updated})
	return nil
}

func (r *notificationRouter) markRead(c *fiber.Ctx) error {
	if err := r.notifications.MarkAsRead(actorId(c), c.Params("notificationId")); err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.OPERATION, "markAsRead")
	return nil
}
