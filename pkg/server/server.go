// Package server provides the HTTP and stdio transports over the tool
// dispatch table. Both transports are thin adapters: all logic lives in
// the tools package and below.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/coolbeans/luxlex/pkg/tools"
)

// Version is stamped at build time.
var Version = "0.1.0"

// Server is the HTTP transport.
type Server struct {
	registry *tools.Registry
	logger   *zap.Logger
	addr     string
	server   *http.Server
}

// New creates an HTTP server over the given tool registry.
func New(registry *tools.Registry, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{registry: registry, logger: logger, addr: addr}
}

// routes builds the HTTP routing table.
func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	router.Get("/health", s.handleHealth)
	router.Get("/version", s.handleVersion)
	router.Get("/api/v1/tools", s.handleListTools)
	router.Post("/api/v1/tools/{name}", s.handleToolCall)
	return router
}

// Start runs the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{Addr: s.addr, Handler: s.routes()}
	s.logger.Info("http transport listening", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": "luxlex", "version": Version})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.List()})
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
		return
	}

	result, err := s.registry.Call(r.Context(), name, json.RawMessage(body))
	if err != nil {
		status := http.StatusBadRequest
		if _, unknown := err.(tools.ErrUnknownTool); unknown {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": result})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}
