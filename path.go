package tess

import "github.com/chewxy/math32"

// PathCommand represents a single command in a path definition.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new subpath at a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// Close closes the current subpath with a line back to its start.
type Close struct{}

func (Close) isPathCommand() {}

// Path represents a vector path as an ordered command sequence.
type Path struct {
	commands []PathCommand
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		commands: make([]PathCommand, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float32) {
	pt := Pt(x, y)
	p.commands = append(p.commands, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float32) {
	pt := Pt(x, y)
	p.commands = append(p.commands, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float32) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.commands = append(p.commands, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	ctrl1 := Pt(c1x, c1y)
	ctrl2 := Pt(c2x, c2y)
	pt := Pt(x, y)
	p.commands = append(p.commands, CubicTo{
		Control1: ctrl1,
		Control2: ctrl2,
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.commands = append(p.commands, Close{})
	p.current = p.start
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.commands = p.commands[:0]
	p.start = Point{}
	p.current = Point{}
}

// Commands returns the path commands in input order.
func (p *Path) Commands() []PathCommand {
	return p.commands
}

// IsEmpty returns true if the path contains no commands.
func (p *Path) IsEmpty() bool {
	return len(p.commands) == 0
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle to the path using cubic Bezier curves.
func (p *Path) Circle(cx, cy, r float32) {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	offset := r * k

	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+offset, cx+offset, cy+r, cx, cy+r)
	p.CubicTo(cx-offset, cy+r, cx-r, cy+offset, cx-r, cy)
	p.CubicTo(cx-r, cy-offset, cx-offset, cy-r, cx, cy-r)
	p.CubicTo(cx+offset, cy-r, cx+r, cy-offset, cx+r, cy)
	p.Close()
}

// Ellipse adds an ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float32) {
	const k = 0.5522847498307936
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc adds a circular arc to the path.
// The arc is drawn from angle1 to angle2 (in radians) around center (cx, cy).
func (p *Path) Arc(cx, cy, r, angle1, angle2 float32) {
	const twoPi = 2 * math32.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	// Split into multiple cubic Bezier curves, at most 90 degrees each
	const maxAngle = math32.Pi / 2
	numSegments := int(math32.Ceil((angle2 - angle1) / maxAngle))
	angleStep := (angle2 - angle1) / float32(numSegments)

	for i := 0; i < numSegments; i++ {
		a1 := angle1 + float32(i)*angleStep
		a2 := a1 + angleStep
		p.arcSegment(cx, cy, r, a1, a2)
	}
}

// arcSegment adds a single arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float32) {
	half := (a2 - a1) / 2
	alpha := math32.Sin(a2-a1) * (math32.Sqrt(4+3*math32.Tan(half)*math32.Tan(half)) - 1) / 3

	cos1, sin1 := math32.Cos(a1), math32.Sin(a1)
	cos2, sin2 := math32.Cos(a2), math32.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	c1x := x1 - alpha*r*sin1
	c1y := y1 + alpha*r*cos1
	c2x := x2 + alpha*r*sin2
	c2y := y2 - alpha*r*cos2

	if len(p.commands) == 0 {
		p.MoveTo(x1, y1)
	}
	p.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// RoundedRectangle adds a rectangle with rounded corners.
func (p *Path) RoundedRectangle(x, y, w, h, r float32) {
	// Clamp radius to half of the smaller dimension
	maxR := math32.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math32.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math32.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math32.Pi/2, math32.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math32.Pi, 3*math32.Pi/2)
	p.Close()
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.commands = make([]PathCommand, len(p.commands))
	copy(result.commands, p.commands)
	result.start = p.start
	result.current = p.current
	return result
}
