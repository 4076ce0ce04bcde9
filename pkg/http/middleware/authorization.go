package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-taskboard/taskboard/pkg/http"
	"github.com/go-taskboard/taskboard/pkg/http/jwt"
	"github.com/go-taskboard/taskboard/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	// DETAIL marks response data set by a handler for the unified
	// response middleware, e.g. c.Locals(middleware.DETAIL, value).
	DETAIL = "detail"

	// OPERATION marks a mutation result with no payload.
	OPERATION = "operation"

	// UserID is the locals key holding the authenticated caller id.
	UserID = "userId"
)

// AuthorizationMiddleware validates the bearer token and the matching
// redis session, then stores the caller id in the request locals.
// Requests without a valid identity are rejected.
func AuthorizationMiddleware(secretKey, redisKeyPrefix string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userId, errResp := resolveCaller(c, secretKey, redisKeyPrefix, client)
		if errResp != nil {
			return http.WithRepErrMsg(c, errResp.Code, errResp.Msg, c.Path())
		}
		c.Locals(UserID, userId)
		return c.Next()
	}
}

// OptionalAuthorizationMiddleware resolves the caller identity when a
// valid token is present and continues anonymously otherwise. Read
// paths use it so queries can degrade to empty results.
func OptionalAuthorizationMiddleware(secretKey, redisKeyPrefix string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userId, errResp := resolveCaller(c, secretKey, redisKeyPrefix, client)
		if errResp == nil {
			c.Locals(UserID, userId)
		}
		return c.Next()
	}
}

func resolveCaller(c *fiber.Ctx, secretKey, redisKeyPrefix string, client *redis.Client) (string, *http.Response) {
	aToken := c.Get("Authorization")
	if aToken == "" {
		return "", http.TokenBeEmpty
	}

	parts := strings.SplitN(aToken, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", http.TokenBeEmpty
	}

	claims, err := jwt.ParseToken(parts[1], secretKey)
	if err != nil {
		if errors.Is(err, goJwt.ErrTokenExpired) {
			return "", http.TokenExpired
		}
		log.Debugf("parse token failed: %v", err)
		return "", http.InvalidToken
	}

	// The session must still exist in redis; logout removes it.
	tokenKey := redisKeyPrefix + claims.UserId
	exists, err := client.Exists(context.Background(), tokenKey).Result()
	if err != nil {
		log.Errorf("redis check token exists failed: %v", err)
		return "", http.InternalError
	}
	if exists == 0 {
		return "", http.TokenExpired
	}

	return claims.UserId, nil
}
