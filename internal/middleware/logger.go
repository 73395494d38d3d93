package middleware

import (
	"context"
	"time"

	"github.com/pulsegram/backend/pkg/router"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type beginKey struct{}

// WithStartTime stamps the request so the closing logger can compute the
// handling duration.
func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return context.WithValue(ctx, beginKey{}, time.Now()), nil
	}
}

// Logger records every request with its duration and outcome.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)

		duration := time.Duration(0)
		if begin, ok := ctx.Value(beginKey{}).(time.Time); ok {
			duration = time.Since(begin)
		}

		if err := xcontext.GetError(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s (%s) failed: %v",
				r.Method, r.URL.Path, duration, err)
		} else {
			xcontext.Logger(ctx).Infof("%s %s (%s)", r.Method, r.URL.Path, duration)
		}
	}
}
