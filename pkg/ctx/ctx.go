package ctx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context bundles the process-wide resources handed to repositories
// and services: the database handle, the redis client and the logger.
type Context struct {
	DBIns    *gorm.DB
	RedisIns *redis.Client
	Ctx      context.Context
	Log      *zap.SugaredLogger
}

func NewContext(ctx context.Context, db *gorm.DB, rds *redis.Client, log *zap.SugaredLogger) *Context {
	return &Context{
		DBIns:    db,
		RedisIns: rds,
		Ctx:      ctx,
		Log:      log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

// DBSession returns the database handle for query building.
func (c *Context) DBSession() *gorm.DB {
	return c.DBIns
}

func (c *Context) GetRedis() *redis.Client {
	return c.RedisIns
}
