package portal

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/store"
	"github.com/agolabs/architect/internal/version"
)

// errNoBlueprint is reported when the store holds no deployment.
var errNoBlueprint = errors.New("no blueprint deployed")

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handlePreview)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/blueprint", s.handleBlueprint)
		r.Get("/frameworks", s.handleFrameworks)
	})
	r.Get("/ws/deploy", s.handleDeploy)

	return r
}

func (s *Server) lastBlueprint(ctx context.Context) (*blueprint.Blueprint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return store.LoadLast(ctx, s.kv)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleBlueprint(w http.ResponseWriter, r *http.Request) {
	bp, err := s.lastBlueprint(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if bp == nil {
		respondError(w, http.StatusNotFound, errNoBlueprint)
		return
	}
	respondJSON(w, http.StatusOK, bp)
}

func (s *Server) handleFrameworks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"frameworks": framework.All(),
		"default":    framework.Default().ID,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	bp, err := s.lastBlueprint(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, newPreviewData(bp)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
