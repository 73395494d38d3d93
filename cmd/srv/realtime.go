package main

import (
	"log"
	"net/http"

	"github.com/pulsegram/backend/internal/domain/realtime"
	"github.com/pulsegram/backend/internal/middleware"
	"github.com/pulsegram/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startRealtime(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadSnowFlake()
	s.loadRedis(ct.Context)
	s.loadRepos()
	s.loadDomains()

	s.hub = realtime.NewHub(s.messageDomain, s.messageRepo)
	s.channelDomain = realtime.NewChannelDomain(s.hub)
	s.loadRealtimeRouter()

	s.server = &http.Server{
		Addr:    s.configs.RealtimeServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting realtime server on %s\n", s.configs.RealtimeServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRealtimeRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.WithSnowFlake(s.snowflake)
	if s.redisClient != nil {
		s.router.WithRedisClient(s.redisClient)
	}

	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.NewAuthVerifier())

	router.GET(s.router, "/channel", s.channelDomain.Serve)
}
