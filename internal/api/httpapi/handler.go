// Package httpapi serves the draw operations as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xtding233/gacha-backend/internal/draw"
	"github.com/xtding233/gacha-backend/internal/gacha"
	"github.com/xtding233/gacha-backend/internal/session"
)

// SessionHeader selects the session; absent means session.GlobalKey.
const SessionHeader = "X-Session-ID"

type errorResp struct {
	Err       string `json:"err"`
	RequestID string `json:"requestId,omitempty"`
}

// Handler exposes an Orchestrator over HTTP.
type Handler struct {
	orch *draw.Orchestrator
}

func NewHandler(orch *draw.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Routes builds the router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/draws/single", h.run(h.orch.RunSingle))
		r.Post("/draws/batch", h.run(h.orch.RunBatch))
		r.Post("/reset", h.run(h.orch.ResetAll))
		r.Get("/status", h.run(h.orch.Status))
	})
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type operation func(ctx context.Context, key string) (draw.Result, error)

func (h *Handler) run(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(SessionHeader)
		if key == "" {
			key = session.GlobalKey
		}
		if err := session.ValidateKey(key); err != nil {
			respondError(w, r, http.StatusBadRequest, err)
			return
		}
		res, err := op(r.Context(), key)
		if err != nil {
			status := statusFor(err)
			var ce *gacha.ConfigError
			switch {
			case errors.As(err, &ce):
				log.Printf("http request_id=%s session=%s: configuration error: %v", RequestIDFrom(r.Context()), key, err)
			case status >= http.StatusInternalServerError:
				log.Printf("http request_id=%s session=%s: %v", RequestIDFrom(r.Context()), key, err)
			}
			respondError(w, r, status, err)
			return
		}
		respondJSON(w, http.StatusOK, res.View())
	}
}

// statusFor mirrors grpcapi's code mapping: a rejected rarity table is a
// server-side precondition failure, not a client error.
func statusFor(err error) int {
	var ce *gacha.ConfigError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	case draw.IsStorageError(err):
		return http.StatusServiceUnavailable
	case errors.As(err, &ce):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	respondJSON(w, status, errorResp{Err: err.Error(), RequestID: RequestIDFrom(r.Context())})
}
