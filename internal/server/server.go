// Package server exposes the renderer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/invoicing-renderer/docs"
	"github.com/invoicing-renderer/internal/cache"
	"github.com/invoicing-renderer/internal/config"
	"github.com/invoicing-renderer/internal/repository"
	"github.com/invoicing-renderer/internal/storage"
	"github.com/invoicing-renderer/pkg/render"
)

// InvoiceStore is the source of stored invoices.
type InvoiceStore interface {
	Get(ctx context.Context, id string) (*repository.Record, error)
	RecordArtifact(ctx context.Context, a repository.Artifact) (uuid.UUID, error)
}

// Options wires the server's collaborators. Only Generator is required.
type Options struct {
	Generator *render.Generator
	// Variant identifies the generator settings in cache keys.
	Variant      string
	PreviewScale float64
	Store        InvoiceStore
	Sink         storage.Sink
	Prefix       string
	Cache        *cache.Cache
	Logger       *zap.Logger
}

// Server is the HTTP front end of the renderer.
type Server struct {
	cfg  config.HTTPConfig
	opts Options
	log  *zap.Logger
}

// New builds a server. The caller starts it with ListenAndServe or mounts
// Handler.
func New(cfg config.HTTPConfig, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.PreviewScale <= 0 {
		opts.PreviewScale = 1
	}
	return &Server{cfg: cfg, opts: opts, log: log}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, s.recoverer, s.accessLog)

	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/templates", s.templatesHandler).Methods(http.MethodGet)
	r.HandleFunc("/invoices/render", s.renderHandler).Methods(http.MethodPost)
	r.HandleFunc("/invoices/preview", s.previewHandler).Methods(http.MethodPost)
	r.HandleFunc("/invoices/{id}/pdf", s.storedInvoiceHandler).Methods(http.MethodGet)
	if s.cfg.SwaggerEnabled {
		r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
