// Package geom computes joint angles from 2-D positions.
package geom

import "math"

// Point is a 2-D position in normalized image coordinates.
type Point struct {
	X float64
	Y float64
}

// Angle returns the unsigned angle in degrees formed at vertex b by the
// segments b→a and b→c, folded into [0, 180]. Coincident points produce 0.
func Angle(a, b, c Point) float64 {
	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}
