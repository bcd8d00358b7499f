package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"tutorhub-service/internal/backend"
	"tutorhub-service/internal/cache"
	"tutorhub-service/internal/config"
	availGet "tutorhub-service/internal/http-server/handlers/availability/get"
	courseGet "tutorhub-service/internal/http-server/handlers/courses/get"
	imageUpload "tutorhub-service/internal/http-server/handlers/images/upload"
	profileGet "tutorhub-service/internal/http-server/handlers/profiles/get"
	reviewCreate "tutorhub-service/internal/http-server/handlers/reviews/create"
	reviewDelete "tutorhub-service/internal/http-server/handlers/reviews/delete"
	reviewUpdate "tutorhub-service/internal/http-server/handlers/reviews/update"
	semesterGet "tutorhub-service/internal/http-server/handlers/semesters/get"
	sessionDelete "tutorhub-service/internal/http-server/handlers/session/delete"
	sessionSet "tutorhub-service/internal/http-server/handlers/session/set"
	tutoringCreate "tutorhub-service/internal/http-server/handlers/tutorings/create"
	tutoringDelete "tutorhub-service/internal/http-server/handlers/tutorings/delete"
	tutoringGet "tutorhub-service/internal/http-server/handlers/tutorings/get"
	tutoringUpdate "tutorhub-service/internal/http-server/handlers/tutorings/update"
	svc "tutorhub-service/internal/service"
	"tutorhub-service/internal/session"
	slogpretty "tutorhub-service/pkg/handlers/slogPretty"
	"tutorhub-service/pkg/middleware/mwLogger"
	"tutorhub-service/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	readCache, err := cache.NewRedisCache(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis cache", sl.Err(err))
		os.Exit(1)
	}

	client := backend.New(cfg.Backend, log)
	sessions := session.NewManager(cfg.Session.Secret)
	service := svc.NewService(client, readCache, log, cfg.CacheTTL, cfg.Backend.PlaceholderImage)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Catalogue
	router.Get("/courses", courseGet.New(log, service))
	router.Get("/courses/{id}", courseGet.New(log, service))
	router.Get("/semesters", semesterGet.New(log, service))

	// Tutoring sessions
	router.Get("/tutorings", tutoringGet.New(log, service, sessions))
	router.Get("/tutorings/{id}", tutoringGet.New(log, service, sessions))
	router.Post("/tutorings", tutoringCreate.New(log, service, sessions))
	router.Put("/tutorings/{id}", tutoringUpdate.New(log, service, sessions))
	router.Delete("/tutorings/{id}", tutoringDelete.New(log, service, sessions))

	// Availability
	router.Get("/tutorings/{id}/availability", availGet.New(log, service))

	// Images
	router.Post("/tutorings/{id}/image", imageUpload.New(log, service, sessions))

	// Reviews
	router.Post("/reviews", reviewCreate.New(log, service, sessions))
	router.Patch("/reviews/{id}", reviewUpdate.New(log, service, sessions))
	router.Delete("/reviews/{id}", reviewDelete.New(log, service, sessions))

	// Profiles & session
	router.Get("/profiles/{id}", profileGet.New(log, service))
	router.Post("/session", sessionSet.New(log, service, sessions))
	router.Delete("/session", sessionDelete.New(log, sessions))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := readCache.Close(); err != nil {
		log.Error("Failed to close cache", sl.Err(err))
	} else {
		log.Info("Cache closed")
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
