package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blog_api/internal/logger"
	"blog_api/internal/service"
	"blog_api/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
	shutdown       context.Context
}

// Option customizes a Handler.
type Option func(*Handler)

// WithAllowedOrigins enables CORS for the given origins ("*" allows any origin).
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.allowedOrigins = origins }
}

// WithShutdown stops long-lived streams (the post feed) once ctx is done.
func WithShutdown(ctx context.Context) Option {
	return func(h *Handler) { h.shutdown = ctx }
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, shutdown: context.Background()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	validation.Init()

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), h.accessLog())
	if mw := h.corsMiddleware(); mw != nil {
		router.Use(mw)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerPostRoutes(router)

	// Post feed over WebSocket; same port, token required
	router.GET("/ws/posts", h.userIdentity, h.postFeed)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("", h.signUp)
		users.POST("/login", h.login)
	}

	authed := users.Group("", h.userIdentity)
	{
		authed.POST("/logout", h.logout)
		authed.GET("", h.listUsers)
		authed.DELETE("", h.deleteAllUsers)
		authed.GET("/:id", h.getUser)
		authed.DELETE("/:id", h.deleteUser)
		authed.PATCH("/:id", h.patchUser)
		authed.PUT("/:id", h.replaceUser)
		authed.GET("/:id/posts", h.userPosts)
	}
}

func (h *Handler) registerPostRoutes(r *gin.Engine) {
	posts := r.Group("/posts", h.userIdentity)
	{
		posts.GET("", h.listPosts)
		posts.POST("", h.createPost)
		posts.DELETE("", h.deleteAllPosts)
		posts.GET("/:id", h.getPost)
		posts.DELETE("/:id", h.deletePost)
		posts.PATCH("/:id", h.patchPost)
		posts.PUT("/:id", h.replacePost)
		posts.GET("/:id/user", h.postOwner)
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	if len(h.allowedOrigins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range h.allowedOrigins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = h.allowedOrigins
	return cors.New(cfg)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
