// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

// Map is the placement of one map file in a world.
//
// X and Y are grid coordinates, not pixels. Width and Height are nil unless
// the manifest states them; pattern-derived maps never set them.
type Map struct {
	Filename string
	X        int32
	Y        int32
	Width    *int32
	Height   *int32
}

// Equal reports whether m and other hold the same values. Width and Height
// are compared by value.
func (m Map) Equal(other Map) bool {
	return m.Filename == other.Filename &&
		m.X == other.X &&
		m.Y == other.Y &&
		equalOptional(m.Width, other.Width) &&
		equalOptional(m.Height, other.Height)
}

func equalOptional(a, b *int32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
