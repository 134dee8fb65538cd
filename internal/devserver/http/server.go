// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"devserve/internal/devserver/static"
	"github.com/go-chi/chi/v5"
)

// Logger abstracts logging for the server.
type Logger interface {
	Printf(format string, v ...any)
}

// Config holds server configuration. It is read once by New.
type Config struct {
	Bind    string
	Port    int
	Root    string
	Index   string
	LogFile string
	Logger  Logger
}

// Stats counts requests by outcome since the server was created.
type Stats struct {
	Requests    int64 `json:"requests_total"`
	Served      int64 `json:"served_total"`
	Rejected    int64 `json:"rejected_total"`
	NotFound    int64 `json:"not_found_total"`
	Failed      int64 `json:"failed_total"`
	Interrupted int64 `json:"interrupted_total"`
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg       Config
	router    *chi.Mux
	log       Logger
	accessLog *os.File
	start     time.Time
	outcomes  [static.StreamInterrupted + 1]atomic.Int64
	requests  atomic.Int64
}

// New validates cfg and returns an initialized server.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Index == "" {
		cfg.Index = static.DefaultIndex
	}
	if !filepath.IsAbs(cfg.Root) {
		return nil, fmt.Errorf("project root %q is not absolute", cfg.Root)
	}
	cfg.Root = filepath.Clean(cfg.Root)
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory", cfg.Root)
	}

	s := &Server{cfg: cfg, router: chi.NewRouter(), log: cfg.Logger, start: time.Now()}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open access log: %w", err)
		}
		s.accessLog = f
	}
	s.initRoutes()
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Root returns the project root being served.
func (s *Server) Root() string {
	return s.cfg.Root
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, fmt.Sprint(s.cfg.Port))
}

// Stats returns a snapshot of the request counters.
func (s *Server) Stats() Stats {
	return Stats{
		Requests:    s.requests.Load(),
		Served:      s.outcomes[static.OK].Load(),
		Rejected:    s.outcomes[static.PathRejected].Load(),
		NotFound:    s.outcomes[static.NotFound].Load(),
		Failed:      s.outcomes[static.ServerError].Load(),
		Interrupted: s.outcomes[static.StreamInterrupted].Load(),
	}
}

func (s *Server) observe(_ *http.Request, o static.Outcome) {
	if o >= 0 && int(o) < len(s.outcomes) {
		s.outcomes[o].Add(1)
	}
}

// Close releases the access log. It is called by Start on return.
func (s *Server) Close() error {
	if s.accessLog == nil {
		return nil
	}
	err := s.accessLog.Close()
	s.accessLog = nil
	return err
}

// Start begins serving until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr(), Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		ctxTo, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxTo); err != nil {
			s.log.Printf("shutdown: %v", err)
		}
	}()
	s.log.Printf("serving %s on %s", s.cfg.Root, s.Addr())
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
	}
	st := s.Stats()
	s.log.Printf("stopped after %s: %d requests, %d served, %d rejected, %d not found, %d failed, %d interrupted",
		time.Since(s.start).Round(time.Second), st.Requests, st.Served, st.Rejected, st.NotFound, st.Failed, st.Interrupted)
	if cerr := s.Close(); cerr != nil {
		s.log.Printf("close access log: %v", cerr)
	}
	return err
}
