package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter returns HTTP router triggering commands and exposing status and metrics.
func NewRouter(commands Commands, metrics http.Handler, logger *zerolog.Logger) *chi.Mux {
	h := httpHandler{commands: commands, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.healthz)
	r.Get("/status", h.status)
	r.Post("/sync", h.sync)
	r.Post("/sync/reset", h.reset)
	r.Post("/cleanup", h.cleanup)
	r.Post("/cleanup/abort", h.abortCleanup)
	r.Method(http.MethodGet, "/metrics", metrics)

	return r
}

type httpHandler struct {
	commands Commands
	logger   *zerolog.Logger
}

func (h httpHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h httpHandler) status(w http.ResponseWriter, r *http.Request) {
	status, err := h.commands.Status(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, http.StatusOK)
}

func (h httpHandler) sync(w http.ResponseWriter, r *http.Request) {
	report, err := h.commands.Sync(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, report, http.StatusOK)
}

func (h httpHandler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.Reset(r.Context()); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) cleanup(w http.ResponseWriter, r *http.Request) {
	report, err := h.commands.Cleanup(r.Context())
	if err != nil {
		h.fail(w, r, err, cleanupStatusCode(err))
		return
	}

	writeJSON(w, report, http.StatusOK)
}

func (h httpHandler) abortCleanup(w http.ResponseWriter, r *http.Request) {
	if err := h.commands.AbortCleanup(r.Context()); err != nil {
		h.fail(w, r, err, cleanupStatusCode(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h httpHandler) fail(w http.ResponseWriter, r *http.Request, err error, code int) {
	h.logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("request failed")

	writeJSON(w, map[string]string{"error": err.Error()}, code)
}

func (h httpHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func cleanupStatusCode(err error) int {
	if errors.Is(err, ErrCleanupRunning) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
