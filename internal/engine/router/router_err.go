package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/go-taskboard/taskboard/internal/engine/service"
	httpx "github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/log"
)

// replyErr maps service failures onto the error envelope. Unknown
// errors are logged and answered as internal errors without detail.
func replyErr(c *fiber.Ctx, err error) error {
	var resp *httpx.Response
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		resp = httpx.Unauthorized
	case errors.Is(err, service.ErrAccessDenied):
		resp = httpx.PermissionDenied
	case errors.Is(err, service.ErrUserNotFound):
		resp = httpx.UserNotExist
	case errors.Is(err, service.ErrAlreadyMember):
		resp = httpx.Conflict
	case errors.Is(err, service.ErrNotificationNotFound):
		resp = httpx.NotFound
	case errors.Is(err, service.ErrEmailTaken):
		resp = httpx.UserAlreadyExist
	case errors.Is(err, service.ErrInvalidCredentials):
		resp = httpx.UserIncorrectPassword
	case errors.Is(err, service.ErrInvalidArgument):
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, err.Error(), c.Path())
	default:
		log.Errorw("request failed", "path", c.Path(), "error", err)
		resp = httpx.InternalError
	}
	return httpx.WithRepErrMsg(c, resp.Code, resp.Msg, c.Path())
}
