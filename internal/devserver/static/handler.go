// CLASSIFICATION: COMMUNITY
// Filename: handler.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"io"
	"log"
	"net/http"
)

// Outcome is the terminal state of one file request.
type Outcome int

const (
	OK Outcome = iota
	PathRejected
	NotFound
	ServerError
	StreamInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case PathRejected:
		return "rejected"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case StreamInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status sent for o. StreamInterrupted has none since
// headers are already committed.
func (o Outcome) Status() int {
	switch o {
	case OK:
		return http.StatusOK
	case PathRejected:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Logger abstracts logging for the file handler.
type Logger interface {
	Printf(format string, v ...any)
}

// Option configures FileHandler.
type Option func(*fileHandler)

// WithIndex sets the directory index file name.
func WithIndex(name string) Option {
	return func(h *fileHandler) {
		if name != "" {
			h.resolver.Index = name
		}
	}
}

// WithFileSystem replaces the host filesystem.
func WithFileSystem(fsys FileSystem) Option {
	return func(h *fileHandler) {
		if fsys != nil {
			h.fs = fsys
		}
	}
}

// WithLogger routes diagnostics to l instead of the standard logger.
func WithLogger(l Logger) Option {
	return func(h *fileHandler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithObserver registers fn to be called once per request with its outcome.
func WithObserver(fn func(*http.Request, Outcome)) Option {
	return func(h *fileHandler) { h.observe = fn }
}

type fileHandler struct {
	resolver Resolver
	fs       FileSystem
	log      Logger
	observe  func(*http.Request, Outcome)
}

// FileHandler returns an HTTP handler that serves files below root, which
// must be an absolute clean path. Every method is served the same way.
func FileHandler(root string, opts ...Option) http.Handler {
	h := &fileHandler{
		resolver: Resolver{Root: root},
		fs:       OS(),
		log:      log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.resolver.FS = h.fs
	return h
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.RequestURI
	if target == "" {
		target = r.URL.RequestURI()
	}

	name, err := h.resolver.Resolve(target)
	if err != nil {
		h.log.Printf("static: %s %q: %v", r.Method, target, err)
		h.fail(w, r, PathRejected)
		return
	}

	info, err := h.fs.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		h.fail(w, r, NotFound)
		return
	}

	f, err := h.fs.Open(name)
	if err != nil {
		h.log.Printf("static: open %s: %v", name, err)
		h.fail(w, r, ServerError)
		return
	}
	defer f.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", ContentType(name))
	hdr.Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		h.log.Printf("static: stream %s: %v", name, err)
		h.report(r, StreamInterrupted)
		// Headers are gone; tell net/http to drop the connection.
		panic(http.ErrAbortHandler)
	}
	h.report(r, OK)
}

func (h *fileHandler) fail(w http.ResponseWriter, r *http.Request, o Outcome) {
	status := o.Status()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, http.StatusText(status))
	h.report(r, o)
}

func (h *fileHandler) report(r *http.Request, o Outcome) {
	if h.observe != nil {
		h.observe(r, o)
	}
}
