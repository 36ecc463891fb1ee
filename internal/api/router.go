package api

import (
    "strings"

    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/d60-Lab/social-feed/config"
    _ "github.com/d60-Lab/social-feed/docs"
    "github.com/d60-Lab/social-feed/internal/api/handler"
    "github.com/d60-Lab/social-feed/internal/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)

    if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
        // 全空白内容不算有效帖子
        _ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
            return strings.TrimSpace(fl.Field().String()) != ""
        })
    }

    r := gin.New()
    r.Use(middleware.Recovery())
    r.Use(otelgin.Middleware("social-feed"))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

    r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    v1 := r.Group("/api/v1")
    {
        v1.POST("/auth/register", h.Register)

        v1.POST("/posts", h.CreatePost)
        v1.GET("/posts/feed", h.GetFeed)
        v1.POST("/posts/:id/like", h.LikePost)

        v1.POST("/users/follow", h.Follow)
        v1.GET("/users/:user_id/followers", h.ListFollowers)

        v1.POST("/admin/users/:user_id/timeline/rebuild", h.RebuildTimeline)
    }
    return r
}
