// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import "math"

// Axis names a grid axis.
type Axis string

// Grid axes.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Operation names the arithmetic step of a transform.
type Operation string

// Transform operations, in the order they are applied.
const (
	OpMultiply Operation = "multiply"
	OpAdd      Operation = "add"
)

// Transform maps a captured grid index onto a world coordinate:
// capture*Multiplier + Offset.
type Transform struct {
	Axis       Axis
	Multiplier int32
	Offset     int32
}

// Apply computes v*Multiplier + Offset. Both steps are checked against the
// int32 range; the result never wraps.
func (t Transform) Apply(v int32) (int32, error) {
	product := int64(v) * int64(t.Multiplier)
	if !fitsInt32(product) {
		return 0, ErrArithmeticOverflow(t.Axis, OpMultiply, v, t)
	}

	sum := product + int64(t.Offset)
	if !fitsInt32(sum) {
		return 0, ErrArithmeticOverflow(t.Axis, OpAdd, v, t)
	}

	return int32(sum), nil
}

func fitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
