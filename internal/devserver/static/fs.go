// CLASSIFICATION: COMMUNITY
// Filename: fs.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem is the filesystem access used by the resolver and the file
// handler. Names are absolute OS paths.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

// OS returns the host filesystem.
func OS() FileSystem { return osFS{} }

type osFS struct{}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (osFS) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}
