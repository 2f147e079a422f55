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

	_ "github.com/pulsefeed/pulsefeed/docs"

	"github.com/pulsefeed/pulsefeed/config"
	"github.com/pulsefeed/pulsefeed/internal/api/handler"
	"github.com/pulsefeed/pulsefeed/internal/api/middleware"
	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/pkg/cache"
	"github.com/pulsefeed/pulsefeed/pkg/response"
)

// NewRouter wires middleware and routes. pages may be nil, which disables
// the global-feed page cache.
func NewRouter(cfg *config.Config, h *handler.Handler, auth service.AuthService, pages cache.Store) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLog())
	r.Use(otelgin.Middleware("pulsefeed"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Server.RateLimitRPM > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimitRPM))
	}
	r.Use(middleware.Authenticate(auth, cfg.Auth.CookieName))

	// the global feed is the only cached page; everything else renders
	// fresh on every request
	if pages != nil {
		r.GET("/", middleware.PageCache(pages, cfg.Feed.CacheTTL), h.GlobalFeed)
	} else {
		r.GET("/", h.GlobalFeed)
	}

	r.GET("/group/:slug/", h.CommunityFeed)

	authed := r.Group("", middleware.LoginRequired())
	{
		authed.GET("/new/", h.NewPostForm)
		authed.POST("/new/", h.CreatePost)
		authed.GET("/follow/", h.FollowFeed)
	}

	ar := r.Group("/auth")
	{
		ar.GET("/login/", h.LoginForm)
		ar.POST("/login/", h.Login)
		ar.POST("/signup/", h.Signup)
		ar.GET("/logout/", h.Logout)
	}

	r.Static("/media", cfg.Media.Dir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/:username/", h.ProfileFeed)
	r.GET("/:username/follow", middleware.LoginRequired(), h.FollowAuthor)
	r.GET("/:username/unfollow", middleware.LoginRequired(), h.UnfollowAuthor)
	r.GET("/:username/:post_id/", h.PostDetail)
	r.GET("/:username/:post_id/edit/", middleware.LoginRequired(), h.EditPostForm)
	r.POST("/:username/:post_id/edit/", middleware.LoginRequired(), h.UpdatePost)
	r.POST("/:username/:post_id/comment", middleware.LoginRequired(), h.AddComment)

	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })

	return r
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// whitespace-only counts as empty
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}
