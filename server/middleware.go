package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

const headerRequestID = "X-Request-ID"

// handlerFunc is a route handler that may fail. Failures are handled by guard.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// RequestID returns the id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// guard turns a failing handler into an http.HandlerFunc. Returned errors and
// panics are logged with full detail and answered with the generic 500 body.
func (s *Server) guard(next handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.unhandled(w, r, fmt.Errorf("panic: %v", v), debug.Stack())
			}
		}()
		if err := next(w, r); err != nil {
			s.unhandled(w, r, err, nil)
		}
	}
}

// recoverer guards the middleware chain outside the routes.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.unhandled(w, r, fmt.Errorf("panic: %v", v), debug.Stack())
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) unhandled(w http.ResponseWriter, r *http.Request, err error, stack []byte) {
	args := []any{"request_id", RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "error", err}
	if stack != nil {
		args = append(args, "stack", string(stack))
	}
	s.logger.Error("request failed", args...)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgUnhandled})
}

// requestID assigns every request an id, reusing a reasonable incoming one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.ResponseWriter.Write(b)
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			"request_id", RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsHandler allows cross-origin calls from the configured origins.
func corsHandler(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{headerRequestID},
	}).Handler(next)
}
