package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/config"
	"github.com/0xPuncker/cron-dashboard/pkg/utils"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	router.Use(loggingMiddleware(handler.logger))
	router.Use(corsMiddleware)

	SetupRoutes(router, handler)

	return router
}

func SetupRoutes(router *mux.Router, handler *Handler) {
	router.HandleFunc("/", handler.Dashboard).Methods(http.MethodGet)
	router.HandleFunc("/api/jobs", handler.ListJobs).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/v1/health", handler.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/jobs", handler.ListDefinitions).Methods(http.MethodGet)
}

func NewServer(cfg *config.Config, handler *Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      NewRouter(handler),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
}

// Shutdown stops srv, waiting at most timeout for open requests.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rw.status,
				"duration":   utils.FormatDuration(time.Since(start)),
				"user_agent": r.UserAgent(),
				"remote_ip":  r.RemoteAddr,
			}).Info("Request processed")
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
