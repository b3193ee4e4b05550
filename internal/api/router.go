package api

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/yatube/config"
	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
)

// SetupRouter 注册中间件与路由
func SetupRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware(cfg.Tracing.ServiceName),
		middleware.Authenticate([]byte(cfg.JWT.Secret), cfg.JWT.Issuer),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/posts", h.ListPosts)
		v1.GET("/posts/:id", h.GetPost)
		v1.GET("/groups", h.ListGroups)
		v1.GET("/groups/:slug/posts", h.ListGroupPosts)
		v1.GET("/profiles/:username/posts", h.ListProfilePosts)
		v1.GET("/profiles/:username/following", h.ListFollowing)
	}

	authed := v1.Group("", middleware.RequireLogin(cfg.Auth.LoginURL))
	{
		authed.GET("/follow/posts", h.ListFollowPosts)

		writes := authed.Group("", middleware.RateLimit(cfg.RateLimit))
		writes.POST("/posts", h.CreatePost)
		writes.POST("/posts/:id/edit", h.EditPost)
		writes.POST("/posts/:id/comments", h.AddComment)
		writes.POST("/profiles/:username/follow", h.Follow)
		writes.POST("/profiles/:username/unfollow", h.Unfollow)
	}
	return r
}
