package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrconsole/internal/api"
	"hrconsole/internal/app"
)

// Server is the HTTP server of the HR console.
type Server struct {
	router *gin.Engine
	http   *http.Server
	app    *app.App
}

// NewServer creates a server over an assembled app.
func NewServer(a *app.App) *Server {
	devMode := a.Config.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.New(),
		app:    a,
	}
	s.router.Use(gin.Recovery())
	if devMode {
		s.router.Use(gin.Logger())
	}
	s.setupRoutes(devMode)

	return s
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	h := api.NewHandler(s.app.Cache, s.app.Views, s.app.Log)
	apiGroup := s.router.Group("/api")
	{
		h.RegisterRoutes(apiGroup)
	}

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	if devMode {
		// frontend dev server
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		s.router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until Shutdown is called.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes the app.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.app.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
