// Package geom provides the coordinate types shared by geoio entities and
// the global shift subsystem.
//
// Runtime geometry is stored with float32 components (Vector3) while source
// files may carry full double precision (Vector3d). The width gap between
// the two is what makes the global shift negotiation necessary.
package geom

import "math"

// CoordinateSize is the byte width of a runtime coordinate component.
// The shift negotiator only runs when this is strictly smaller than
// FullPrecisionSize.
const (
	CoordinateSize    = 4
	FullPrecisionSize = 8
)

// Vector3 is a runtime-precision coordinate triple.
type Vector3 struct {
	X, Y, Z float32
}

// Vector3d is a full-precision coordinate triple as read from source files.
type Vector3d struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vector3d) Add(w Vector3d) Vector3d {
	return Vector3d{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3d) Sub(w Vector3d) Vector3d {
	return Vector3d{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// IsZero reports whether all components are exactly zero.
func (v Vector3d) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// MaxAbs returns the largest component magnitude.
func (v Vector3d) MaxAbs() float64 {
	m := math.Abs(v.X)
	if a := math.Abs(v.Y); a > m {
		m = a
	}
	if a := math.Abs(v.Z); a > m {
		m = a
	}
	return m
}

// Narrow converts to the runtime coordinate type, losing precision.
func (v Vector3d) Narrow() Vector3 {
	return Vector3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Widen converts a runtime vector back to full precision.
func (v Vector3) Widen() Vector3d {
	return Vector3d{float64(v.X), float64(v.Y), float64(v.Z)}
}
