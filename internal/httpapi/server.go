package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"news_portal/internal/auth"
	"news_portal/internal/config"
	"news_portal/internal/metrics"
	"news_portal/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	HTTP       config.HTTPConfig
	CookieName string
	Content    *service.ContentService
	Users      *service.UserService
	Gate       *auth.Gate
	Store      Pinger
	Logger     *slog.Logger
}

// Server wraps the gin engine with graceful shutdown.
type Server struct {
	cfg        config.HTTPConfig
	cookieName string
	engine     *gin.Engine
	content    *service.ContentService
	users      *service.UserService
	gate       *auth.Gate
	store      Pinger
	logger     *slog.Logger
}

func New(opts Options) *Server {
	gin.SetMode(opts.HTTP.Mode)

	s := &Server{
		cfg:        opts.HTTP,
		cookieName: opts.CookieName,
		engine:     gin.New(),
		content:    opts.Content,
		users:      opts.Users,
		gate:       opts.Gate,
		store:      opts.Store,
		logger:     opts.Logger.With("component", "http"),
	}
	// Match on the escaped path so an encoded slash stays inside a search term.
	s.engine.UseRawPath = true

	s.engine.Use(
		requestIDMiddleware(),
		recoveryMiddleware(s.logger),
		accessLogMiddleware(s.logger),
		metrics.Middleware(),
	)
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/readyz", s.readyz)
	s.engine.GET("/metrics", metrics.Handler())
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "Not found"})
	})

	api := s.engine.Group(s.cfg.BasePath)
	admin := s.require(auth.RoleAdmin)
	superAdmin := s.require(auth.RoleSuperAdmin)

	api.GET("/auth/user", s.require(auth.RoleAuthenticated), s.getCurrentUser)

	api.GET("/articles", s.listArticles)
	api.GET("/articles/search/:query", s.searchArticles)
	api.GET("/articles/:id", s.getArticle)
	api.POST("/articles", admin, s.createArticle)
	api.PUT("/articles/:id", admin, s.updateArticle)
	api.DELETE("/articles/:id", admin, s.deleteArticle)

	api.GET("/videos", s.listVideos)
	api.GET("/videos/:id", s.getVideo)
	api.POST("/videos", admin, s.createVideo)
	api.PUT("/videos/:id", admin, s.updateVideo)
	api.DELETE("/videos/:id", admin, s.deleteVideo)

	api.GET("/epapers", s.listEpapers)
	api.GET("/epapers/:id", s.getEpaper)
	api.POST("/epapers", admin, s.createEpaper)
	api.PUT("/epapers/:id", admin, s.updateEpaper)
	api.DELETE("/epapers/:id", admin, s.deleteEpaper)

	api.GET("/admin/users", superAdmin, s.listUsers)
	api.PATCH("/admin/users/:id", superAdmin, s.setUserAdmin)
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr, "base_path", s.cfg.BasePath)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readyz(c *gin.Context) {
	if err := s.store.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
