package xcontext

import "context"

type userIDKey struct{}

// requestState carries the per-request error and response so that closer
// middlewares running after the handler can observe them.
type requestState struct {
	err      error
	response any
}

func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestStateKey{}, &requestState{})
}

func SetError(ctx context.Context, err error) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.err = err
	}
}

func GetError(ctx context.Context) error {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		state.response = resp
	}
}

func GetResponse(ctx context.Context) any {
	if state, ok := ctx.Value(requestStateKey{}).(*requestState); ok {
		return state.response
	}

	return nil
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
