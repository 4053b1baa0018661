package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/parlolabs/parlo/internal/convo"
	"github.com/parlolabs/parlo/internal/eval"
	"github.com/parlolabs/parlo/internal/practice"
)

// Conversations is the practice service surface the API exposes outward.
type Conversations interface {
	Start(ctx context.Context, level convo.Level) (*practice.StartResult, error)
	SubmitUtterance(ctx context.Context, id uuid.UUID, audio []byte) (*practice.UtteranceResult, error)
	End(ctx context.Context, id uuid.UUID) (*eval.Report, error)
}

type Server struct {
	router  *chi.Mux
	port    int
	service Conversations
}

func NewServer(port int, service Conversations) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		service: service,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.startSession)
		r.Post("/{sessionID}/utterances", s.submitUtterance)
		r.Post("/{sessionID}/end", s.endSession)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
