package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "go.uber.org/zap"

    "github.com/d60-Lab/social-feed/config"
    "github.com/d60-Lab/social-feed/internal/api"
    "github.com/d60-Lab/social-feed/internal/api/handler"
    "github.com/d60-Lab/social-feed/internal/cache"
    "github.com/d60-Lab/social-feed/internal/repository"
    "github.com/d60-Lab/social-feed/internal/service"
    pkgcache "github.com/d60-Lab/social-feed/pkg/cache"
    "github.com/d60-Lab/social-feed/pkg/database"
    "github.com/d60-Lab/social-feed/pkg/logger"
    "github.com/d60-Lab/social-feed/pkg/tracing"
)

// @title Social Feed API
// @version 1.0
// @description 写扩散时间线服务：发帖落库后同步推入粉丝的 Redis 时间线
func main() {
    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }
    if err := logger.Init(cfg.Log.Level); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        }
        defer sentry.Flush(2 * time.Second)
    }

    shutdownTracing, err := tracing.Init(context.Background(), "social-feed", cfg.Trace.Endpoint)
    if err != nil {
        logger.Fatal("tracing init failed", zap.Error(err))
    }

    db, err := database.InitDB(cfg)
    if err != nil {
        logger.Fatal("database init failed", zap.Error(err))
    }
    if err := database.AutoMigrate(db); err != nil {
        logger.Fatal("migrate failed", zap.Error(err))
    }

    rdb, err := pkgcache.InitRedis(cfg)
    if err != nil {
        logger.Fatal("redis init failed", zap.Error(err))
    }
    defer rdb.Close()

    userRepo := repository.NewUserRepository(db)
    postRepo := repository.NewPostRepository(db)
    followRepo := repository.NewFollowRepository(db)
    timeline := cache.NewTimeline(rdb)

    userSvc := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
    relSvc := service.NewRelationshipService(db, followRepo)
    postSvc := service.NewPostService(db, postRepo, followRepo, timeline)

    h := handler.New(userSvc, relSvc, postSvc)
    r := api.NewRouter(cfg, h)

    srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
    go func() {
        logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal("listen failed", zap.Error(err))
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit
    logger.Info("shutting down")

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(ctx); err != nil {
        logger.Error("server shutdown failed", zap.Error(err))
    }
    if err := shutdownTracing(ctx); err != nil {
        logger.Error("tracing shutdown failed", zap.Error(err))
    }
}
