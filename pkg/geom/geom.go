// Package geom provides the small set of 2D primitives shared by the layout,
// routing and rendering stages.
//
// Coordinates follow the SVG convention: the origin is the top-left corner,
// X grows to the right and Y grows downward.
package geom

import "math"

// Point is a location in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Min  Point
	Size Size
}

// RectAround returns the rectangle of size s centred on c.
func RectAround(c Point, s Size) Rect {
	return Rect{Min: Point{X: c.X - s.W/2, Y: c.Y - s.H/2}, Size: s}
}

// Max returns the bottom-right corner of r.
func (r Rect) Max() Point { return Point{X: r.Min.X + r.Size.W, Y: r.Min.Y + r.Size.H} }

// Center returns the centre of r.
func (r Rect) Center() Point { return Point{X: r.Min.X + r.Size.W/2, Y: r.Min.Y + r.Size.H/2} }

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	mx := r.Max()
	return p.X >= r.Min.X && p.X <= mx.X && p.Y >= r.Min.Y && p.Y <= mx.Y
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	rm, om := r.Max(), o.Max()
	return r.Min.X < om.X && o.Min.X < rm.X && r.Min.Y < om.Y && o.Min.Y < rm.Y
}
