// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import (
	"regexp"
	"strconv"
)

// Pattern derives a map's grid position from its filename.
//
// The first two capture groups of Regexp hold the x and y indices. Each is
// scaled by its multiplier and shifted by its offset to give the map's
// coordinate. A regexp with fewer than two groups never matches.
type Pattern struct {
	Regexp      *regexp.Regexp
	MultiplierX int32
	MultiplierY int32
	OffsetX     int32
	OffsetY     int32
}

// NewPattern compiles expr and returns a pattern using it.
func NewPattern(expr string, multiplierX, multiplierY, offsetX, offsetY int32) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, err //nolint:wrapcheck // callers wrap with their own context
	}
	return Pattern{
		Regexp:      re,
		MultiplierX: multiplierX,
		MultiplierY: multiplierY,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
	}, nil
}

// Equal reports whether p and other describe the same rule. Regexps are
// compared by their source text.
func (p Pattern) Equal(other Pattern) bool {
	return p.MultiplierX == other.MultiplierX &&
		p.MultiplierY == other.MultiplierY &&
		p.OffsetX == other.OffsetX &&
		p.OffsetY == other.OffsetY &&
		regexpSource(p.Regexp) == regexpSource(other.Regexp) &&
		(p.Regexp == nil) == (other.Regexp == nil)
}

// TransformX returns the transform applied to the x capture.
func (p Pattern) TransformX() Transform {
	return Transform{Axis: AxisX, Multiplier: p.MultiplierX, Offset: p.OffsetX}
}

// TransformY returns the transform applied to the y capture.
func (p Pattern) TransformY() Transform {
	return Transform{Axis: AxisY, Multiplier: p.MultiplierY, Offset: p.OffsetY}
}

// MatchPath derives a Map for path. It fails with a WORLD_NO_MATCH error when
// the regexp does not match or lacks an x or y group, and with
// WORLD_ARITHMETIC_OVERFLOW or WORLD_MALFORMED_CAPTURE when the captures
// cannot be turned into coordinates.
func (p Pattern) MatchPath(path string) (Map, error) {
	return p.match(path).result(path)
}

func (p Pattern) match(path string) outcome {
	if p.Regexp == nil {
		return noMatch()
	}

	loc := p.Regexp.FindStringSubmatchIndex(path)
	if loc == nil {
		return noMatch()
	}

	xText, ok := submatch(path, loc, 1)
	if !ok {
		return noMatch()
	}
	yText, ok := submatch(path, loc, 2)
	if !ok {
		return noMatch()
	}

	x, err := deriveCoordinate(path, xText, p.TransformX())
	if err != nil {
		return failed(err)
	}
	y, err := deriveCoordinate(path, yText, p.TransformY())
	if err != nil {
		return failed(err)
	}

	return matched(Map{Filename: path, X: x, Y: y})
}

func deriveCoordinate(path, capture string, t Transform) (int32, error) {
	v, err := strconv.ParseInt(capture, 10, 32)
	if err != nil {
		return 0, ErrMalformedCapture(path, t.Axis, capture, err)
	}

	coord, err := t.Apply(int32(v))
	if err != nil {
		return 0, withPath(path, err)
	}
	return coord, nil
}

// submatch returns the text of group n, or false when the group does not
// exist or did not participate in the match.
func submatch(s string, loc []int, n int) (string, bool) {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return "", false
	}
	return s[loc[2*n]:loc[2*n+1]], true
}

func regexpSource(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}
