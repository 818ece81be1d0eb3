// Package server provides the read-only HTTP surface for generated pages:
// individual page documents by slug and the aggregate index.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studybuddy/pseo-engine/internal/store"
)

const shutdownTimeout = 30 * time.Second

// Server serves stored pages over HTTP. It never writes; generation runs
// own all mutation.
type Server struct {
	httpServer *http.Server
	store      store.Store
}

// Config holds server configuration
type Config struct {
	Addr string
}

// New creates a server over an opened store
func New(cfg Config, st store.Store) *Server {
	s := &Server{store: st}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{slug}", s.handleGetPage)
	mux.HandleFunc("GET /index.json", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
	return s
}

// Start runs the server until the context is cancelled or an interrupt
// arrives, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("Server stopped")
	return nil
}

// handleGetPage serves one published page document. Unpublished pages are
// indistinguishable from missing ones.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	page, err := s.store.GetPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}
	if !page.Published {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleIndex serves the aggregate index document
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Index(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load index")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
