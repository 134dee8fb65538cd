// CLASSIFICATION: COMMUNITY
// Filename: resolve.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// DefaultIndex is served for directory requests.
const DefaultIndex = "index.html"

// ErrRejected signals a request target that is malformed or would escape the
// project root.
var ErrRejected = errors.New("request target rejected")

// Resolver maps raw request targets to files below Root.
type Resolver struct {
	// Root is an absolute, clean directory path.
	Root string
	// Index names the file served for directory requests. Empty means
	// DefaultIndex.
	Index string
	// FS is consulted only for the directory check. Nil means the host
	// filesystem.
	FS FileSystem
}

// Resolve returns the absolute path to serve for rawTarget, or an error
// wrapping ErrRejected. A rejected target never touches the filesystem.
func (r Resolver) Resolve(rawTarget string) (string, error) {
	rel, dirStyle, err := normalizeTarget(rawTarget)
	if err != nil {
		return "", err
	}
	candidate, err := containedJoin(r.Root, rel)
	if err != nil {
		return "", err
	}
	if rel == "" || dirStyle {
		return filepath.Join(r.Root, filepath.FromSlash(rel), r.index()), nil
	}
	if info, err := r.fs().Stat(candidate); err == nil && info.IsDir() {
		candidate = filepath.Join(candidate, r.index())
	}
	return candidate, nil
}

func (r Resolver) index() string {
	if r.Index == "" {
		return DefaultIndex
	}
	return r.Index
}

func (r Resolver) fs() FileSystem {
	if r.FS == nil {
		return OS()
	}
	return r.FS
}

// normalizeTarget decodes the path of rawTarget and cleans it into a
// slash-separated path relative to the root. The empty string stands for the
// root itself. dirStyle reports a trailing slash on the decoded path.
//
// Leading slashes are removed before cleaning so that ".." segments climbing
// above the root survive and are caught here.
func normalizeTarget(rawTarget string) (rel string, dirStyle bool, err error) {
	target, _, _ := strings.Cut(rawTarget, "#")
	if target == "" {
		target = "/"
	}
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	decoded := u.Path
	if decoded == "" {
		decoded = "/"
	}
	dirStyle = strings.HasSuffix(decoded, "/")

	rel = path.Clean(strings.TrimLeft(decoded, "/"))
	if rel == "." {
		rel = ""
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false, fmt.Errorf("%w: %q escapes root", ErrRejected, decoded)
	}
	return rel, dirStyle, nil
}

// containedJoin joins rel onto root and verifies, on the joined OS path, that
// the result is still root or below it. This runs after normalizeTarget and
// catches what string cleaning cannot see, such as separators that only the
// host platform interprets.
func containedJoin(root, rel string) (string, error) {
	candidate := filepath.Join(root, filepath.FromSlash(rel))
	back, err := filepath.Rel(root, candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) || filepath.IsAbs(back) {
		return "", fmt.Errorf("%w: %q escapes root", ErrRejected, rel)
	}
	return candidate, nil
}
