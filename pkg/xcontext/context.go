package xcontext

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/pulsegram/backend/config"
	"github.com/pulsegram/backend/pkg/authenticator"
	"github.com/pulsegram/backend/pkg/logger"
	"github.com/pulsegram/backend/pkg/xredis"
	"gorm.io/gorm"
)

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	dbTxKey         struct{}
	tokenEngineKey  struct{}
	snowflakeKey    struct{}
	redisClientKey  struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	requestStateKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was opened on
// this context by WithDBTransaction, the transaction is returned instead.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		return holder.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction and makes DB() return it for every
// context derived from the returned one. End it with
// WithCommitDBTransaction or WithRollbackDBTransaction; after that, DB()
// falls back to the root handle.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}

	return ctx
}

// WithRollbackDBTransaction is a no-op if the transaction was already
// committed, so it is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}

	return ctx
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithRedisClient(ctx context.Context, client xredis.Client) context.Context {
	return context.WithValue(ctx, redisClientKey{}, client)
}

// RedisClient returns nil if no redis client was configured. Callers treat
// redis as a best-effort collaborator.
func RedisClient(ctx context.Context) xredis.Client {
	client, ok := ctx.Value(redisClientKey{}).(xredis.Client)
	if !ok {
		return nil
	}

	return client
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}
