package main

import (
	"log"
	"net/http"

	"github.com/pulsegram/backend/internal/middleware"
	"github.com/pulsegram/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadSnowFlake()
	s.loadRedis(ct.Context)
	s.loadRepos()
	s.loadDomains()
	s.loadAPIRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting api server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadAPIRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.WithSnowFlake(s.snowflake)
	if s.redisClient != nil {
		s.router.WithRedisClient(s.redisClient)
	}

	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())

	// Auth API, no token required.
	authRouter := s.router.Branch()
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
		router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
	}

	tokenRouter := s.router.Branch()
	tokenRouter.Before(middleware.NewAuthVerifier())
	{
		// User API. Static paths must be registered before {user_id}.
		router.GET(tokenRouter, "/users/search", s.userDomain.Search)
		router.GET(tokenRouter, "/users/suggested", s.userDomain.GetSuggested)
		router.GET(tokenRouter, "/users/profile/{username}", s.userDomain.Get)
		router.PUT(tokenRouter, "/users/me", s.userDomain.Update)
		router.GET(tokenRouter, "/users/{user_id}", s.userDomain.Get)
		router.GET(tokenRouter, "/users/{user_id}/followers", s.followDomain.GetFollowers)
		router.GET(tokenRouter, "/users/{user_id}/following", s.followDomain.GetFollowing)

		// Post API
		router.POST(tokenRouter, "/posts", s.postDomain.Create)
		router.GET(tokenRouter, "/posts/feed", s.postDomain.GetFeed)
		router.GET(tokenRouter, "/posts/{post_id}", s.postDomain.Get)
		router.DELETE(tokenRouter, "/posts/{post_id}", s.postDomain.Delete)
		router.POST(tokenRouter, "/posts/{post_id}/like", s.postDomain.ToggleLike)

		// Comment API
		router.POST(tokenRouter, "/posts/{post_id}/comments", s.commentDomain.Create)
		router.GET(tokenRouter, "/posts/{post_id}/comments", s.commentDomain.GetList)
		router.GET(tokenRouter, "/comments/{comment_id}/replies", s.commentDomain.GetReplies)
		router.DELETE(tokenRouter, "/comments/{comment_id}", s.commentDomain.Delete)

		// Follow API
		router.GET(tokenRouter, "/follow/requests", s.followDomain.GetRequests)
		router.PUT(tokenRouter, "/follow/requests/{request_id}", s.followDomain.RespondRequest)
		router.POST(tokenRouter, "/follow/{user_id}", s.followDomain.Toggle)

		// Message API
		router.GET(tokenRouter, "/messages/conversations", s.messageDomain.GetConversations)
		router.GET(tokenRouter, "/messages/history", s.messageDomain.GetHistory)
		router.POST(tokenRouter, "/messages/{receiver_id}", s.messageDomain.Send)
		router.PUT(tokenRouter, "/messages/{message_id}/read", s.messageDomain.MarkRead)
		router.DELETE(tokenRouter, "/messages/{message_id}", s.messageDomain.Delete)
		router.GET(tokenRouter, "/messages/{user_id}", s.messageDomain.GetThread)

		// Notification API
		router.GET(tokenRouter, "/notifications", s.notificationDomain.GetList)
		router.GET(tokenRouter, "/notifications/unread-count", s.notificationDomain.GetUnreadCount)
		router.PUT(tokenRouter, "/notifications/read-all", s.notificationDomain.MarkAllRead)
		router.PUT(tokenRouter, "/notifications/{notification_id}/read", s.notificationDomain.MarkRead)
		router.DELETE(tokenRouter, "/notifications/{notification_id}", s.notificationDomain.Delete)
	}
}
