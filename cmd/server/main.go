package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/warisan/heritage-api/internal/api"
	"github.com/warisan/heritage-api/internal/core/service"
	"github.com/warisan/heritage-api/internal/infrastructure/config"
	mongodb "github.com/warisan/heritage-api/internal/infrastructure/db/mongo"
	redisdb "github.com/warisan/heritage-api/internal/infrastructure/db/redis"
	"github.com/warisan/heritage-api/internal/infrastructure/queue"
	"github.com/warisan/heritage-api/pkg/logger"
)

// @title           Heritage Platform API
// @version         1.0
// @description     Cultural-heritage content platform: articles, culture entries, quizzes and endangered-culture reports with a shared moderation lifecycle.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	contentRepo := mongodb.NewContentRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("ensure user indexes failed")
	}
	if err := contentRepo.EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("ensure content indexes failed")
	}
	if err := categoryRepo.EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("ensure category indexes failed")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, logg)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		DB:              db,
		Redis:           rdb,
		Tokens:          tokens,
		AuthService:     service.NewAuthService(userRepo, tokens, logg),
		ContentService:  service.NewContentService(contentRepo, redisdb.NewReportDedup(rdb), dispatcher, cfg.AutoPublishPrivileged, logg),
		UserService:     service.NewUserService(userRepo, logg),
		CategoryService: service.NewCategoryService(categoryRepo, logg),
		Logger:          logg,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("http server failed")
		}
	}()

	logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("heritage platform started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown error")
	}
}
