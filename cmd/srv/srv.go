package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pulsegram/backend/config"
	"github.com/pulsegram/backend/internal/domain"
	"github.com/pulsegram/backend/internal/domain/realtime"
	"github.com/pulsegram/backend/internal/repository"
	"github.com/pulsegram/backend/pkg/logger"
	"github.com/pulsegram/backend/pkg/router"
	"github.com/pulsegram/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client
	snowflake   *snowflake.Node

	userRepo         repository.UserRepository
	postRepo         repository.PostRepository
	likeRepo         repository.LikeRepository
	commentRepo      repository.CommentRepository
	followRepo       repository.FollowRepository
	messageRepo      repository.MessageRepository
	notificationRepo repository.NotificationRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	postDomain         domain.PostDomain
	commentDomain      domain.CommentDomain
	followDomain       domain.FollowDomain
	messageDomain      domain.MessageDomain
	notificationDomain domain.NotificationDomain

	hub           *realtime.Hub
	channelDomain realtime.ChannelDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "pulsegram"),
			Password: getEnv("MYSQL_PASSWORD", "pulsegram"),
			Database: getEnv("MYSQL_DATABASE", "pulsegram"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("API_HOST", "localhost"),
				Port: getEnv("API_PORT", "8080"),
				Cert: getEnv("API_CERT", ""),
				Key:  getEnv("API_KEY", ""),
			},
			AllowCORS:    strings.Fields(getEnv("API_ALLOW_CORS", "")),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
		},
		RealtimeServer: config.ServerConfigs{
			Host: getEnv("REALTIME_HOST", "localhost"),
			Port: getEnv("REALTIME_PORT", "8081"),
			Cert: getEnv("REALTIME_CERT", ""),
			Key:  getEnv("REALTIME_KEY", ""),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvDuration("REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		File: config.FileConfigs{
			MaxSize: getEnvInt("MAX_FILE_SIZE", 10*1024*1024),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(int64(getEnvInt("SNOWFLAKE_NODE", 1)))
	if err != nil {
		panic(err)
	}

	s.snowflake = node
}

// loadRedis is best-effort: without redis the services still run, they
// only lose online indicators.
func (s *srv) loadRedis(ctx context.Context) {
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(ctx, s.configs.Redis.Addr)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.postRepo = repository.NewPostRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.followRepo = repository.NewFollowRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.notificationRepo = repository.NewNotificationRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.postRepo, s.followRepo, s.likeRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.likeRepo, s.commentRepo, s.userRepo, s.notificationRepo)
	s.commentDomain = domain.NewCommentDomain(
		s.commentRepo, s.postRepo, s.userRepo, s.notificationRepo)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo, s.notificationRepo)
	s.messageDomain = domain.NewMessageDomain(s.messageRepo, s.userRepo, s.notificationRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getEnvInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
