// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"fmt"
	"io"
	stdhttp "net/http"

	"devserve/internal/devserver/static"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) initRoutes() {
	r := s.router
	r.Use(s.requestCounter)
	if s.accessLog != nil {
		r.Use(accessLogger(s.accessLog, s.log))
	}
	r.Use(middleware.Recoverer)

	files := static.FileHandler(s.cfg.Root,
		static.WithIndex(s.cfg.Index),
		static.WithLogger(s.log),
		static.WithObserver(s.observe),
	)
	// Every method and every target goes through the file pipeline,
	// including targets chi cannot route such as "*".
	r.Handle("/*", files)
	r.NotFound(files.ServeHTTP)
	r.MethodNotAllowed(files.ServeHTTP)
}

func (s *Server) requestCounter(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func accessLogger(out io.Writer, log Logger) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = stdhttp.StatusOK
				}
				rec := fmt.Sprintf("%s %s %s %d %d\n", r.RemoteAddr, r.Method, r.RequestURI, status, ww.BytesWritten())
				if _, err := io.WriteString(out, rec); err != nil {
					log.Printf("access log: %v", err)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
