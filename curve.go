package tess

// Curve types for parametric evaluation and arc-length estimation.
// Based on kurbo patterns, adapted for Go idioms and float32 math.

// quadArclenSteps and cubicArclenSteps are the fixed subdivision counts
// used for chord-summation arc length. The estimate only budgets vertex
// density, so a few percent of error is acceptable; fixed counts keep
// the result deterministic for identical inputs.
const (
	quadArclenSteps  = 8
	cubicArclenSteps = 16
)

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// NewLine creates a new line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// Eval evaluates the line at parameter t (0 to 1).
// t=0 returns P0, t=1 returns P1.
func (l Line) Eval(t float32) Point {
	return l.P0.Lerp(l.P1, t)
}

// Start returns the starting point of the line.
func (l Line) Start() Point {
	return l.P0
}

// End returns the ending point of the line.
func (l Line) End() Point {
	return l.P1
}

// Arclen returns the exact length of the line segment.
func (l Line) Arclen() float32 {
	return l.P0.Distance(l.P1)
}

// Midpoint returns the midpoint of the line segment.
func (l Line) Midpoint() Point {
	return l.Eval(0.5)
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// NewQuadBez creates a new quadratic Bezier curve.
func NewQuadBez(p0, p1, p2 Point) QuadBez {
	return QuadBez{P0: p0, P1: p1, P2: p2}
}

// Eval evaluates the curve at parameter t (0 to 1) in Bernstein form.
func (q QuadBez) Eval(t float32) Point {
	mt := 1 - t
	// (1-t)^2 * P0 + 2(1-t)t * P1 + t^2 * P2
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Start returns the starting point of the curve.
func (q QuadBez) Start() Point {
	return q.P0
}

// End returns the ending point of the curve.
func (q QuadBez) End() Point {
	return q.P2
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{
			P0: q.P0,
			P1: q.P0.Lerp(q.P1, 0.5),
			P2: mid,
		}, QuadBez{
			P0: mid,
			P1: q.P1.Lerp(q.P2, 0.5),
			P2: q.P2,
		}
}

// Arclen approximates the arc length of the curve by chord summation
// over a fixed number of subdivisions.
func (q QuadBez) Arclen() float32 {
	var sum float32
	prev := q.P0
	for i := 1; i <= quadArclenSteps; i++ {
		p := q.Eval(float32(i) / quadArclenSteps)
		sum += prev.Distance(p)
		prev = p
	}
	return sum
}

// Raise elevates the quadratic to a cubic Bezier curve.
// Returns an exact cubic representation of this quadratic.
func (q QuadBez) Raise() CubicBez {
	// C1 = P0 + 2/3 * (P1 - P0), C2 = P2 + 2/3 * (P1 - P2)
	return CubicBez{
		P0: q.P0,
		P1: Point{
			X: q.P0.X + (2.0/3.0)*(q.P1.X-q.P0.X),
			Y: q.P0.Y + (2.0/3.0)*(q.P1.Y-q.P0.Y),
		},
		P2: Point{
			X: q.P2.X + (2.0/3.0)*(q.P1.X-q.P2.X),
			Y: q.P2.Y + (2.0/3.0)*(q.P1.Y-q.P2.Y),
		},
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Eval evaluates the curve at parameter t (0 to 1) in Bernstein form.
func (c CubicBez) Eval(t float32) Point {
	mt := 1 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Start returns the starting point of the curve.
func (c CubicBez) Start() Point {
	return c.P0
}

// End returns the ending point of the curve.
func (c CubicBez) End() Point {
	return c.P3
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Arclen approximates the arc length of the curve by chord summation
// over a fixed number of subdivisions.
func (c CubicBez) Arclen() float32 {
	var sum float32
	prev := c.P0
	for i := 1; i <= cubicArclenSteps; i++ {
		p := c.Eval(float32(i) / cubicArclenSteps)
		sum += prev.Distance(p)
		prev = p
	}
	return sum
}

// Deriv returns the derivative curve (a quadratic Bezier).
// The derivative gives the tangent direction at any point.
func (c CubicBez) Deriv() QuadBez {
	return QuadBez{
		P0: Point{X: 3 * (c.P1.X - c.P0.X), Y: 3 * (c.P1.Y - c.P0.Y)},
		P1: Point{X: 3 * (c.P2.X - c.P1.X), Y: 3 * (c.P2.Y - c.P1.Y)},
		P2: Point{X: 3 * (c.P3.X - c.P2.X), Y: 3 * (c.P3.Y - c.P2.Y)},
	}
}

// Tangent returns the tangent vector at parameter t.
func (c CubicBez) Tangent(t float32) Point {
	return c.Deriv().Eval(t)
}
