package model

type ServeChannelRequest struct{}

type ServeChannelResponse struct{}
