// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package resource opens world manifests from a storage backend.
package resource

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/samber/oops"
)

// Reader opens a named resource for reading.
type Reader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSReader reads resources from an fs.FS. Names use forward slashes and are
// cleaned before lookup; a leading "/" is ignored.
type FSReader struct {
	fsys fs.FS
}

// NewFSReader returns a Reader over fsys.
func NewFSReader(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

// Open opens name within the filesystem.
func (r *FSReader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, oops.With("name", name).Wrap(err)
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" {
		clean = "."
	}
	f, err := r.fsys.Open(clean)
	if err != nil {
		return nil, oops.With("name", name).Wrap(err)
	}
	return f, nil
}

// OSReader reads resources from the host filesystem using native paths.
type OSReader struct{}

// NewOSReader returns a Reader over the host filesystem.
func NewOSReader() OSReader {
	return OSReader{}
}

// Open opens name with os.Open.
func (OSReader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, oops.With("name", name).Wrap(err)
	}
	f, err := os.Open(name) //nolint:gosec // callers choose which manifest to read
	if err != nil {
		return nil, oops.With("name", name).Wrap(err)
	}
	return f, nil
}

// ReadAll opens name through r and returns its full contents.
func ReadAll(ctx context.Context, r Reader, name string) ([]byte, error) {
	rc, err := r.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, oops.With("name", name).Wrap(err)
	}
	return data, nil
}
