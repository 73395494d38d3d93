package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pulsegram/backend/config"
	"github.com/pulsegram/backend/pkg/authenticator"
	"github.com/pulsegram/backend/pkg/logger"
	"github.com/pulsegram/backend/pkg/xcontext"
	"github.com/pulsegram/backend/pkg/xredis"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can derive a new context
// (e.g. to attach the authenticated user id) or fail the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is determined, successful or not.
type CloserFunc func(ctx context.Context)

type route struct {
	method   string
	segments []string
	handle   http.HandlerFunc
}

type Router struct {
	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	tokenEngine authenticator.TokenEngine
	snowflake   *snowflake.Node
	redisClient xredis.Client

	befores *[]MiddlewareFunc
	afters  *[]CloserFunc
	closers *[]CloserFunc
	routes  *[]route
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		befores:     &[]MiddlewareFunc{},
		afters:      &[]CloserFunc{},
		closers:     &[]CloserFunc{},
		routes:      &[]route{},
	}
}

func (r *Router) WithSnowFlake(node *snowflake.Node) {
	r.snowflake = node
}

func (r *Router) WithRedisClient(client xredis.Client) {
	r.redisClient = client
}

// Branch creates a router sharing the route table but with its own
// middleware chain, so route groups can require different auth.
func (r *Router) Branch() *Router {
	befores := append([]MiddlewareFunc{}, *r.befores...)
	afters := append([]CloserFunc{}, *r.afters...)

	branch := *r
	branch.befores = &befores
	branch.afters = &afters
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	*r.befores = append(*r.befores, middleware)
}

func (r *Router) After(closer CloserFunc) {
	*r.afters = append(*r.afters, closer)
}

// AddCloser appends a closer running on every route of every branch.
func (r *Router) AddCloser(closer CloserFunc) {
	*r.closers = append(*r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func PUT[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPut, pattern, handler)
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodDelete, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, *r.befores...)
	afters := append([]CloserFunc{}, *r.afters...)
	segments := splitPath(pattern)

	*r.routes = append(*r.routes, route{
		method:   method,
		segments: segments,
		handle: func(w http.ResponseWriter, req *http.Request) {
			ctx := r.newRequestContext(req, w)

			params := matchParams(segments, splitPath(req.URL.Path))
			func() {
				for _, m := range befores {
					newCtx, err := m(ctx)
					if err != nil {
						xcontext.SetError(ctx, err)
						return
					}
					ctx = newCtx
				}

				request := new(Request)
				if err := bindRequest(req, params, request); err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				resp, err := handler(ctx, request)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				xcontext.SetResponse(ctx, resp)

				for _, closer := range afters {
					closer(ctx)
				}
			}()

			handleResponse(ctx)
			for _, closer := range *r.closers {
				closer(ctx)
			}
		},
	})
}

func (r *Router) newRequestContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithRequestState(ctx)

	if r.snowflake != nil {
		ctx = xcontext.WithSnowFlake(ctx, r.snowflake)
	}

	if r.redisClient != nil {
		ctx = xcontext.WithRedisClient(ctx, r.redisClient)
	}

	return ctx
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	reqSegments := splitPath(req.URL.Path)
	for _, route := range *r.routes {
		if route.method != req.Method {
			continue
		}

		if matchParams(route.segments, reqSegments) == nil {
			continue
		}

		route.handle(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) Handler() http.Handler {
	if len(r.cfg.ApiServer.AllowCORS) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: r.cfg.ApiServer.AllowCORS,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
			},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		})
		return c.Handler(r)
	}

	return r
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(c rune) bool { return c == '/' })
}

// matchParams matches a request path against a pattern whose segments may
// contain placeholders like {id}. It returns the placeholder values, or nil
// if the path does not match.
func matchParams(pattern, path []string) map[string]string {
	if len(pattern) != len(path) {
		return nil
	}

	params := map[string]string{}
	for i := range pattern {
		if strings.HasPrefix(pattern[i], "{") && strings.HasSuffix(pattern[i], "}") {
			params[strings.Trim(pattern[i], "{}")] = path[i]
			continue
		}

		if pattern[i] != path[i] {
			return nil
		}
	}

	return params
}
