// Package server exposes the markdown pipeline over HTTP.
//
// Routes:
//   - POST /api/markdown: {"markdown": "..."} → {"html": "..."}
//
// Every request is independent; the server holds no per-request state.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/mdsafe/logging"
)

// Renderer turns a decoded markdown value into sanitized HTML.
type Renderer interface {
	RenderValue(v any) (string, error)
}

// Options configures a Server.
type Options struct {
	// MaxBodyBytes caps the request body. Zero means the 100 KiB default.
	MaxBodyBytes int64
	// AllowedOrigins lists the CORS origins. Empty means any origin.
	AllowedOrigins []string
}

const defaultMaxBodyBytes = 100 << 10

// Server serves the markdown endpoint backed by a Renderer.
type Server struct {
	renderer Renderer
	logger   logging.Logger
	opts     Options
}

// New creates a Server. A nil logger discards output.
func New(renderer Renderer, logger logging.Logger, opts Options) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{renderer: renderer, logger: logger, opts: opts}
}

// Router returns an http.Handler with registered routes and middleware.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/markdown", s.guard(s.handleMarkdown))

	var h http.Handler = mux
	h = corsHandler(s.opts.AllowedOrigins, h)
	h = s.accessLog(h)
	h = requestID(h)
	return s.recoverer(h)
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeRequest(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		s.logger.Debug("markdown request rejected", "request_id", RequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoMarkdown})
		return nil
	}

	html, err := s.renderer.RenderValue(req.Markdown)
	if err != nil {
		s.logger.Error("error processing markdown", "request_id", RequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgProcessFailed})
		return nil
	}

	writeJSON(w, http.StatusOK, renderResponse{HTML: html})
	return nil
}

// Run serves srv until ctx is cancelled, then shuts it down, waiting up to
// shutdownTimeout for in-flight requests.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Nop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}
