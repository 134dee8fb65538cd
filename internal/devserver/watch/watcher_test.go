// CLASSIFICATION: COMMUNITY
// Filename: watcher_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureLogger) Printf(format string, v ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, v...))
}

func (c *captureLogger) contains(sub string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	assert.NoError(t, Validate(write("ok.json", `{"hero":{"title":"Duruji"}}`)))
	assert.Error(t, Validate(write("bad.json", `{"hero":`)))
	assert.NoError(t, Validate(write("ok.yml", "menu:\n  - home\n  - news\n")))
	assert.Error(t, Validate(write("bad.YAML", "menu: [home\n")))
	assert.NoError(t, Validate(write("empty.json", "")))
	assert.NoError(t, Validate(write("page.html", "<p>{not json</p>")))
	assert.Error(t, Validate(filepath.Join(dir, "missing.json")))
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))

	logger := &captureLogger{}
	w, err := New(root, logger)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	bad := filepath.Join(root, "content", "site-content.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"hero":`), 0o644))
	require.Eventually(t, func() bool {
		return logger.contains("content/site-content.json") && logger.contains("warning")
	}, 5*time.Second, 20*time.Millisecond)

	// Directories created while running are picked up.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))
	require.Eventually(t, func() bool { return logger.contains("assets") }, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "logo.svg"), []byte("<svg/>"), 0o644))
	require.Eventually(t, func() bool { return logger.contains("assets/logo.svg") }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewFailsOnMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), &captureLogger{})
	assert.Error(t, err)
}
