package geom

// Cubic is a cubic Bezier segment from P0 to P3 with control points P1 and P2.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// At evaluates the curve at parameter t in [0,1].
// Values outside the range are clamped.
func (c Cubic) At(t float64) Point {
	t = max(0, min(1, t))
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Tangent returns the (unnormalised) derivative of the curve at t.
func (c Cubic) Tangent(t float64) Point {
	t = max(0, min(1, t))
	mt := 1 - t
	a := c.P1.Sub(c.P0).Scale(3 * mt * mt)
	b := c.P2.Sub(c.P1).Scale(6 * mt * t)
	d := c.P3.Sub(c.P2).Scale(3 * t * t)
	return a.Add(b).Add(d)
}

// Midpoint returns the point at t=0.5.
func (c Cubic) Midpoint() Point { return c.At(0.5) }

// Flatten approximates the curve with n+1 points (n line segments).
// n below 1 is treated as 1.
func (c Cubic) Flatten(n int) []Point {
	n = max(1, n)
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// Length approximates the arc length by summing a 64-segment flattening.
func (c Cubic) Length() float64 {
	pts := c.Flatten(64)
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}
