package realtime

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
)

type ChannelDomain interface {
	Serve(context.Context, *model.ServeChannelRequest) (*model.ServeChannelResponse, error)
}

type channelDomain struct {
	hub *Hub
}

func NewChannelDomain(hub *Hub) *channelDomain {
	return &channelDomain{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Serve upgrades the request to a websocket connection and blocks until
// the client disconnects.
func (d *channelDomain) Serve(
	ctx context.Context, req *model.ServeChannelRequest,
) (*model.ServeChannelResponse, error) {
	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upgrade connection: %v", err)
		return nil, errorx.Unknown
	}

	d.hub.ServeClient(ctx, conn)
	return &model.ServeChannelResponse{}, nil
}
