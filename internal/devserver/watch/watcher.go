// CLASSIFICATION: COMMUNITY
// Filename: watcher.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports changes under the project root while the development
// server runs and checks the site's JSON and YAML data documents as they are
// edited. It never alters what the server sends.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// Logger abstracts logging for the watcher.
type Logger interface {
	Printf(format string, v ...any)
}

// skipDirs are never watched.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Watcher follows a directory tree with fsnotify.
type Watcher struct {
	root    string
	log     Logger
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	dropped int
}

// New starts watching root and every directory below it.
func New(root string, log Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		root:    root,
		log:     log,
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 20),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run logs events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	rel = filepath.ToSlash(rel)

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Printf("watch: %v", err)
			}
		}
	}

	if w.limiter.Allow() {
		if w.dropped > 0 {
			w.log.Printf("watch: %d changes not shown", w.dropped)
			w.dropped = 0
		}
		w.log.Printf("watch: %s %s", strings.ToLower(ev.Op.String()), rel)
	} else {
		w.dropped++
	}

	if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
		if err := Validate(ev.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.log.Printf("watch: warning: %s: %v", rel, err)
		}
	}
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// Validate parses JSON and YAML documents and reports syntax errors. Other
// files are accepted without reading them.
func Validate(name string) error {
	var decode func([]byte) error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		decode = func(b []byte) error {
			var v any
			return json.Unmarshal(b, &v)
		}
	case ".yml", ".yaml":
		decode = func(b []byte) error {
			var v any
			return yaml.Unmarshal(b, &v)
		}
	default:
		return nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		// Editors truncate before writing.
		return nil
	}
	if err := decode(data); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	return nil
}
