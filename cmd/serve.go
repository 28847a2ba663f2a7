package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"event-media-backend/internal/handlers"
	"event-media-backend/internal/services"
	"event-media-backend/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	e, closeStore, err := setup(c)
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := e.cfg
	blobs, err := openStorage(c.Context, cfg)
	if err != nil {
		return err
	}

	// Initialize services
	notificationService := services.NewNotificationService(e.store.Notifications)
	userService := services.NewUserService(e.store, e.hasher, notificationService, cfg.JWT.Secret, cfg.JWT.TTL, cfg.App.Origin)
	adminService := services.NewAdminService(e.store, e.hasher)
	eventService := services.NewEventService(e.store, e.hasher)
	mediaService := services.NewMediaService(e.store, blobs)

	routes := handlers.RouterConfig{
		Users:         handlers.NewUserHandler(userService, notificationService),
		Admins:        handlers.NewAdminHandler(adminService),
		Events:        handlers.NewEventHandler(eventService),
		Media:         handlers.NewMediaHandler(mediaService, cfg.Server.MaxUploadMB),
		Tokens:        userService,
		AllowedOrigin: cfg.Server.AllowedOrigins,
	}
	if local, ok := blobs.(*storage.Local); ok {
		routes.UploadsDir = local.Dir()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handlers.NewRouter(routes),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("database", cfg.Database.Driver).
			Str("storage", cfg.Storage.Driver).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-c.Context.Done():
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
