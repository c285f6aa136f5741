// Package web is the control surface of the lamp: one page showing the
// active plans plus the plain GET links /m/{digit} and /b/{digit} that
// select a plan.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lautenbacher.net/lavalamp/lamp"
)

// Controller is the part of the lamp the web surface talks to.
type Controller interface {
	Submit(ctx context.Context, kind lamp.CommandKind, index int, source string) error
	State() lamp.State
}

type Server struct {
	ctrl    Controller
	timeout time.Duration
	router  chi.Router
	srv     *http.Server
	addr    net.Addr
}

// NewServer builds the routes. timeout bounds how long a request waits for
// the cycle loop to apply a selection.
func NewServer(ctrl Controller, timeout time.Duration) *Server {
	s := &Server{ctrl: ctrl, timeout: timeout}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.page)
	r.Get("/m/{digit}", s.selectPlan(lamp.SelectColor))
	r.Get("/b/{digit}", s.selectPlan(lamp.SelectBrightness))
	r.Get("/api/state", s.apiState)
	r.NotFound(s.page)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on listen and serves in the background. Bind errors are
// returned right away.
func (s *Server) Start(listen string) error {
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("can't listen on %s: %w", listen, err)
	}
	s.addr = ln.Addr()
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("Web server listening", "addr", s.addr.String())
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Web server stopped", "error", err)
		}
	}()
	return nil
}

// Addr is the bound address after Start.
func (s *Server) Addr() net.Addr {
	return s.addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	slog.Info("Shutting down web server")
	return s.srv.Shutdown(ctx)
}

// digitIndex reads a plan index from the first character of a path segment.
// Anything but a digit maps outside of every plan list.
func digitIndex(param string) (int, bool) {
	if param == "" {
		return 0, false
	}
	return int(param[0] - '0'), true
}

func (s *Server) selectPlan(kind lamp.CommandKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if idx, ok := digitIndex(chi.URLParam(r, "digit")); ok {
			ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
			err := s.ctrl.Submit(ctx, kind, idx, "web")
			cancel()
			switch {
			case errors.Is(err, lamp.ErrPlanOutOfRange):
				// ignored, the page shows the unchanged selection
			case err != nil:
				slog.Warn("Plan selection not confirmed", "kind", kind, "index", idx, "error", err)
			}
		}
		s.page(w, r)
	}
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.ctrl.State()); err != nil {
		slog.Error("Can't render status page", "error", err)
	}
}

func (s *Server) apiState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.State())
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start))
	})
}
