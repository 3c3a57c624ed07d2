package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vss-session/internal/handlers"
	"vss-session/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = time.Minute
)

// Router builds the local bridge: the controller's state surface, password
// recovery, admin user management, health and metrics.
func (a *App) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(a.Registry, a.Log)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(a.Log))
	e.Use(middleware.SecurityHeaders())
	e.Use(a.limiter.Middleware())

	health := handlers.NewHealthCheckHandler(a.health, a.Config.Store.Driver, a.Version, a.Log)
	sessionHandler := handlers.NewSessionHandler(a.Controller, a.Guard, a.Log)
	authHandler := handlers.NewAuthHandler(a.Auth)
	userHandler := handlers.NewUserHandler(a.Users)

	e.GET("/health", health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})))

	session := e.Group("/session")
	session.GET("", sessionHandler.GetSession)
	session.POST("/login", sessionHandler.Login)
	session.POST("/register", sessionHandler.Register)
	session.POST("/logout", sessionHandler.Logout)
	session.DELETE("/error", sessionHandler.ClearError)
	session.POST("/profile", sessionHandler.RefreshProfile)
	session.GET("/route", sessionHandler.Route)

	password := e.Group("/password")
	password.POST("/forgot", authHandler.ForgotPassword)
	password.POST("/verify", authHandler.VerifyCode)
	password.POST("/reset", authHandler.ResetPassword)

	users := e.Group("/users", middleware.RequireAdmin(a.Controller, a.Guard))
	users.GET("", userHandler.ListUsers)
	users.POST("/:id/approve", userHandler.ApproveUser)
	users.POST("/:id/revoke", userHandler.RevokeUser)

	return e
}

// Serve runs the bridge on cfg.Bridge until ctx is cancelled, then shuts it
// down gracefully.
func (a *App) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.Config.Bridge.Address(),
		Handler:      a.Router(),
		ReadTimeout:  a.Config.Bridge.ReadTimeout,
		WriteTimeout: a.Config.Bridge.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.limiter.Run(gctx, pruneInterval)
		return nil
	})

	g.Go(func() error {
		a.Log.Info("Session bridge listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.Log.Info("Shutting down session bridge")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
