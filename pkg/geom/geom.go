// Package geom provides the 2D geometry primitives used by the floor plan.
// All functions are pure. Plan positions are integer units; intermediate
// math is done in floats and rounded back.
package geom

import (
	"fmt"
	"math"
)

// Point is a position on the plan in integer units. Fractional input is
// rounded to the nearest unit so repeated moves and merges cannot drift.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointAt rounds float coordinates to the nearest unit.
func PointAt(x, y float64) Point {
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Angle returns the angle of the segment a->b in radians, in (-pi, pi].
func Angle(a, b Point) float64 {
	return math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X))
}

// Midpoint returns the midpoint of a and b, rounded to the nearest unit.
func Midpoint(a, b Point) Point {
	return PointAt(float64(a.X+b.X)/2, float64(a.Y+b.Y)/2)
}

// ProjectOnSegment returns the point on segment a-b closest to p, rounded
// to the nearest unit, and the parameter t in [0,1] (0 at a, 1 at b).
func ProjectOnSegment(a, b, p Point) (Point, float64) {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return a, 0
	}
	t := ((float64(p.X)-ax)*dx + (float64(p.Y)-ay)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return PointAt(ax+t*dx, ay+t*dy), t
}

// DistanceToSegment returns the distance from p to the closest point on
// segment a-b, computed without rounding the projection.
func DistanceToSegment(a, b, p Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return Distance(a, p)
	}
	t := ((float64(p.X)-ax)*dx + (float64(p.Y)-ay)*dy) / len2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(float64(p.X)-(ax+t*dx), float64(p.Y)-(ay+t*dy))
}
