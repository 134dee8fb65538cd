// CLASSIFICATION: COMMUNITY
// Filename: resolve_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func testSite(t *testing.T) string {
	return writeSite(t, map[string]string{
		"index.html":                "<!DOCTYPE html><title>home</title>",
		"styles/site.css":           "body{margin:0}",
		"a/b/index.html":            "nested",
		"assets/index.html":         "assets",
		"content/site-content.json": `{"hero":{"title":"Duruji"}}`,
	})
}

func TestResolveInsideRoot(t *testing.T) {
	root := testSite(t)
	r := Resolver{Root: root}

	cases := []struct {
		target string
		want   string
	}{
		{"/", "index.html"},
		{"", "index.html"},
		{"/?lang=ka#top", "index.html"},
		{"/styles/site.css?v=3", "styles/site.css"},
		{"/styles/%73ite.css", "styles/site.css"},
		{"//styles//site.css", "styles/site.css"},
		{"/a/b/", "a/b/index.html"},
		{"/a/./b/../b/", "a/b/index.html"},
		{"/assets", "assets/index.html"},
		{"/assets/", "assets/index.html"},
		{"/missing/", "missing/index.html"},
		{"/a/..", "index.html"},
		{"/no-such-file.png", "no-such-file.png"},
		{"/..hidden", "..hidden"},
		{"http://localhost:3000/styles/site.css", "styles/site.css"},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			got, err := r.Resolve(tc.target)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tc.want)), got)
		})
	}
}

func TestResolveRejectsEscapesWithoutFilesystemAccess(t *testing.T) {
	root := testSite(t)
	fsys := &recordingFS{FileSystem: OS()}
	r := Resolver{Root: root, FS: fsys}

	targets := []string{
		"/../../etc/passwd",
		"/a/../../etc/passwd",
		"/..",
		"/../",
		"/%2e%2e/%2e%2e/etc/passwd",
		"/%2E%2E%2Fetc%2Fpasswd",
		"/a/..%2f..%2fetc/passwd",
		"/bad%zzescape",
		"/trailing%",
		"relative/path",
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			_, err := r.Resolve(target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRejected), "got %v", err)
		})
	}
	assert.Empty(t, fsys.Calls())
}

func TestNormalizeTarget(t *testing.T) {
	cases := []struct {
		target   string
		rel      string
		dirStyle bool
	}{
		{"/", "", true},
		{"/a/b/", "a/b", true},
		{"/a/b", "a/b", false},
		{"///a//b", "a/b", false},
		{"/a/%2e/b", "a/b", false},
	}
	for _, tc := range cases {
		rel, dirStyle, err := normalizeTarget(tc.target)
		require.NoError(t, err, tc.target)
		assert.Equal(t, tc.rel, rel, tc.target)
		assert.Equal(t, tc.dirStyle, dirStyle, tc.target)
	}

	_, _, err := normalizeTarget("/x/../../y")
	assert.ErrorIs(t, err, ErrRejected)
}

// containedJoin is exercised directly with inputs normalizeTarget would have
// refused, so the second check stands on its own.
func TestContainedJoin(t *testing.T) {
	root := t.TempDir()

	for _, rel := range []string{"..", "../etc/passwd", "a/../../etc", "a/b/../../../x"} {
		_, err := containedJoin(root, rel)
		assert.ErrorIs(t, err, ErrRejected, rel)
	}

	got, err := containedJoin(root, "")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = containedJoin(root, "a/b/../c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "c"), got)

	got, err = containedJoin(root, "..foo/bar")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "..foo", "bar"), got)
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"index.html":        "text/html; charset=utf-8",
		"site.css":          "text/css; charset=utf-8",
		"main.js":           "application/javascript; charset=utf-8",
		"site-content.json": "application/json; charset=utf-8",
		"logo.SVG":          "image/svg+xml; charset=utf-8",
		"photo.JPEG":        "image/jpeg",
		"photo.jpg":         "image/jpeg",
		"font.woff2":        "font/woff2",
		"config.yml":        "text/yaml; charset=utf-8",
		"config.yaml":       "text/yaml; charset=utf-8",
		"archive.tar.gz":    DefaultContentType,
		"Makefile":          DefaultContentType,
	}
	for name, want := range cases {
		assert.Equal(t, want, ContentType(name), name)
	}
}
