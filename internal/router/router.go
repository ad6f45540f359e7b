package router

import (
	"net/http"
	"strings"

	"github.com/chad-schroeder/blogly/internal/config"
	"github.com/chad-schroeder/blogly/internal/handlers"
	"github.com/chad-schroeder/blogly/internal/middleware"
	"github.com/chad-schroeder/blogly/internal/render"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New builds the engine with middleware, templates and every route.
func New(cfg config.AppConfig, st handlers.Store, log *zap.Logger) (*gin.Engine, error) {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log, serverError))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	}

	// Sessions only carry flash messages
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("blogly_session", sessionStore))

	html, err := render.Load(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = html

	r.Static("/static", cfg.StaticDir)

	RegisterRoutes(r, st, log)

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found")
	})
	return r, nil
}

func serverError(c *gin.Context) {
	handlers.RenderError(c, http.StatusInternalServerError, "Something went wrong, please try again.")
}

func RegisterRoutes(r *gin.Engine, st handlers.Store, log *zap.Logger) {
	// Handlers
	homeHandler := handlers.NewHomeHandler()
	userHandler := handlers.NewUserHandler(st, log)
	postHandler := handlers.NewPostHandler(st, log)
	tagHandler := handlers.NewTagHandler(st, log)

	r.GET("/", homeHandler.Index) // 首页 -> 用户列表

	users := r.Group("/users")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/new", userHandler.ShowCreate)
		users.GET("/:id", userHandler.Detail)
		users.GET("/:id/edit", userHandler.ShowEdit)
		users.POST("/:id/edit", userHandler.Update)
		users.POST("/:id/delete", userHandler.Delete)

		users.GET("/:id/posts/new", postHandler.ShowCreate)
		users.POST("/:id/posts", postHandler.Create)
	}

	posts := r.Group("/posts")
	{
		posts.GET("/:id", postHandler.Detail)
		posts.GET("/:id/edit", postHandler.ShowEdit)
		posts.POST("/:id/edit", postHandler.Update)
		posts.POST("/:id/delete", postHandler.Delete)
	}

	tags := r.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.POST("", tagHandler.Create)
		tags.GET("/new", tagHandler.ShowCreate)
		tags.GET("/:id", tagHandler.Detail)
		tags.GET("/:id/edit", tagHandler.ShowEdit)
		tags.POST("/:id/edit", tagHandler.Update)
		tags.POST("/:id/delete", tagHandler.Delete)
	}
}
