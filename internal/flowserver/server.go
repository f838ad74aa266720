// Package flowserver is a local stand-in for the Aiklyra analysis service.
// It speaks the same wire contract as the hosted API — bearer auth, the
// conversation-flow-analysis operation, the documented error bodies — so the
// CLI and integration tests have a live endpoint to talk to.
package flowserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AethraData/aiklyra"
	"github.com/AethraData/aiklyra/internal/config"
)

// defaultCredits is the per-key allowance before the server starts answering
// with the insufficient-credits error.
const defaultCredits = 100

type Server struct {
	cfg    config.ServerConfig
	router *chi.Mux

	mu      sync.Mutex
	credits map[string]int
}

func New(cfg config.ServerConfig) *Server {
	s := &Server{
		cfg:     cfg,
		router:  chi.NewRouter(),
		credits: make(map[string]int, len(cfg.APIKeys)),
	}
	for _, key := range cfg.APIKeys {
		s.credits[key] = defaultCredits
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.With(s.requireAPIKey).Post("/"+aiklyra.AnalyseEndpoint, s.handleAnalyse)
}

// Handler exposes the router for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requireAPIKey enforces bearer auth and the per-key credit allowance,
// answering with the same 403 detail strings the hosted service uses.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			writeDetail(w, http.StatusForbidden, "Invalid API Key")
			return
		}

		s.mu.Lock()
		remaining, known := s.credits[key]
		if known && remaining > 0 {
			s.credits[key] = remaining - 1
		}
		s.mu.Unlock()

		switch {
		case !known:
			writeDetail(w, http.StatusForbidden, "Invalid API Key")
		case remaining <= 0:
			writeDetail(w, http.StatusForbidden, "Insufficient credits")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

type analyseRequest struct {
	ConversationData map[string][]aiklyra.Turn `json:"conversation_data"`
	MinClusters      *int                      `json:"min_clusters"`
	MaxClusters      *int                      `json:"max_clusters"`
}

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	var req analyseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationDetail(w, "body", fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	defer r.Body.Close()

	if req.ConversationData == nil {
		writeValidationDetail(w, "conversation_data", "Field required")
		return
	}
	if req.MinClusters != nil && req.MaxClusters != nil && *req.MinClusters > *req.MaxClusters {
		writeValidationDetail(w, "min_clusters", "min_clusters must not exceed max_clusters")
		return
	}

	result := analyze(req.ConversationData, req.MinClusters)

	slog.Debug("analysis completed", "sessions", len(req.ConversationData), "clusters", len(result.IntentByCluster))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// writeValidationDetail answers 422 with the structured detail list the
// hosted service emits for request-shape errors.
func writeValidationDetail(w http.ResponseWriter, loc, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]any{
		"detail": []map[string]any{
			{"loc": []string{"body", loc}, "msg": msg, "type": "value_error"},
		},
	})
}

// Run serves until the process receives SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting analysis server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("starting shutdown", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}
