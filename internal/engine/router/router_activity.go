package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-taskboard/taskboard/internal/engine/service"
	"github.com/go-taskboard/taskboard/pkg/http/middleware"
)

type activityRouter struct {
	activities *service.ActivityService
}

func newActivityRouter(activities *service.ActivityService) *activityRouter {
	return &activityRouter{activities: activities}
}

func (r *activityRouter) mount(api fiber.Router, optional fiber.Handler) {
	api.Get("/activities/recent", optional, r.listRecent)
}

func (r *activityRouter) listRecent(c *fiber.Ctx) error {
	details, err := r.activities.ListRecent(actorId(c), c.QueryInt("limit"))
	if err != nil {
		return replyErr(c, err)
	}
	c.Locals(middleware.DETAIL, details)
	return nil
}
