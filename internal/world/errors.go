// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import (
	"github.com/samber/oops"

	"github.com/holomush/tmxworld/pkg/errutil"
)

// Error codes for world loading and path resolution failures.
const (
	CodeNoMatchFound       = "WORLD_NO_MATCH"
	CodeArithmeticOverflow = "WORLD_ARITHMETIC_OVERFLOW"
	CodeMalformedCapture   = "WORLD_MALFORMED_CAPTURE"
	CodeResourceLoading    = "WORLD_RESOURCE_LOADING"
	CodeJSONDecoding       = "WORLD_JSON_DECODING"
	CodeSchemaInvalid      = "WORLD_SCHEMA_INVALID"
)

// ErrNoMatchFound creates an error for a path that no pattern matched.
func ErrNoMatchFound(path string) error {
	return oops.Code(CodeNoMatchFound).
		With("path", path).
		Errorf("no world pattern matches %q", path)
}

// ErrArithmeticOverflow creates an error for a derived coordinate that does
// not fit in an int32. The matcher attaches the path.
func ErrArithmeticOverflow(axis Axis, op Operation, value int32, t Transform) error {
	return oops.Code(CodeArithmeticOverflow).
		With("axis", string(axis)).
		With("operation", string(op)).
		With("capture", value).
		With("multiplier", t.Multiplier).
		With("offset", t.Offset).
		Errorf("%s coordinate overflows int32 on %s (capture %d, multiplier %d, offset %d)",
			axis, op, value, t.Multiplier, t.Offset)
}

// ErrMalformedCapture creates an error for a capture group whose text is not
// a base-10 int32.
func ErrMalformedCapture(path string, axis Axis, capture string, cause error) error {
	return oops.Code(CodeMalformedCapture).
		With("path", path).
		With("axis", string(axis)).
		With("capture", capture).
		Wrapf(cause, "%s capture %q in %q is not an int32", axis, capture, path)
}

// ErrResourceLoading wraps a failure to read a world manifest.
func ErrResourceLoading(path string, cause error) error {
	return oops.Code(CodeResourceLoading).
		With("path", path).
		Wrapf(cause, "loading world %q", path)
}

// ErrJSONDecoding wraps a failure to decode a world manifest body.
func ErrJSONDecoding(source string, cause error) error {
	return oops.Code(CodeJSONDecoding).
		With("source", source).
		Wrapf(cause, "decoding world %q", source)
}

// ErrSchemaInvalid wraps a JSON Schema validation failure.
func ErrSchemaInvalid(source string, cause error) error {
	return oops.Code(CodeSchemaInvalid).
		With("source", source).
		Wrapf(cause, "world %q does not match schema", source)
}

// IsNoMatch reports whether err means the path is simply not part of the
// world. It is the only recoverable resolution error.
func IsNoMatch(err error) bool {
	return errutil.HasCode(err, CodeNoMatchFound)
}

// withPath attaches the resolved path to an error raised below the matcher.
func withPath(path string, err error) error {
	return oops.With("path", path).Wrap(err)
}
