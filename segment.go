package tess

// SegmentKind identifies the curve type of a path segment.
type SegmentKind uint8

// Segment kinds. The numeric values are part of the descriptor wire
// layout consumed by the GPU evaluation kernel.
const (
	KindLine SegmentKind = iota
	KindQuad
	KindCubic
)

// String returns the name of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindQuad:
		return "Quad"
	case KindCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Segment is one line, quadratic, or cubic piece of a path between two
// anchor points. P0 is always the end point of the previous segment (or
// the subpath origin for a closing segment); segments form a contiguous
// chain per subpath.
//
// Control point usage by kind:
//   - KindLine: P0 start, P1 end. P2, P3 unused.
//   - KindQuad: P0 start, P1 control, P2 end. P3 unused.
//   - KindCubic: P0 start, P1, P2 controls, P3 end.
type Segment struct {
	Kind   SegmentKind
	Length float32
	P0     Point
	P1     Point
	P2     Point
	P3     Point
}

// End returns the terminal point of the segment.
func (s Segment) End() Point {
	switch s.Kind {
	case KindQuad:
		return s.P2
	case KindCubic:
		return s.P3
	default:
		return s.P1
	}
}

// ExtractSegments walks a path command sequence and emits an ordered list
// of typed segments, each carrying its control points and an arc-length
// estimate. Multiple subpaths are processed independently and their
// segments concatenated in input order.
//
// A draw or close command that arrives with no current anchor point (no
// preceding MoveTo, or after a Close consumed the subpath) is dropped
// rather than surfaced as an error; malformed authored paths degrade to
// producing fewer segments. Drops are reported at Debug level through the
// package logger.
func ExtractSegments(commands []PathCommand) []Segment {
	segments := make([]Segment, 0, len(commands))

	var origin, last Point
	hasAnchor := false

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case MoveTo:
			origin = c.Point
			last = c.Point
			hasAnchor = true

		case LineTo:
			if !hasAnchor {
				logDroppedCommand("LineTo")
				continue
			}
			segments = append(segments, lineSegment(last, c.Point))
			last = c.Point

		case QuadTo:
			if !hasAnchor {
				logDroppedCommand("QuadTo")
				continue
			}
			q := QuadBez{P0: last, P1: c.Control, P2: c.Point}
			segments = append(segments, Segment{
				Kind:   KindQuad,
				Length: q.Arclen(),
				P0:     q.P0,
				P1:     q.P1,
				P2:     q.P2,
			})
			last = c.Point

		case CubicTo:
			if !hasAnchor {
				logDroppedCommand("CubicTo")
				continue
			}
			cb := CubicBez{P0: last, P1: c.Control1, P2: c.Control2, P3: c.Point}
			segments = append(segments, Segment{
				Kind:   KindCubic,
				Length: cb.Arclen(),
				P0:     cb.P0,
				P1:     cb.P1,
				P2:     cb.P2,
				P3:     cb.P3,
			})
			last = c.Point

		case Close:
			if !hasAnchor {
				logDroppedCommand("Close")
				continue
			}
			segments = append(segments, lineSegment(last, origin))
			// The subpath is consumed: drawing may only resume after
			// another MoveTo.
			hasAnchor = false
		}
	}

	return segments
}

func lineSegment(p0, p1 Point) Segment {
	return Segment{
		Kind:   KindLine,
		Length: p0.Distance(p1),
		P0:     p0,
		P1:     p1,
	}
}

func logDroppedCommand(kind string) {
	Logger().Debug("tess: dropped path command with no anchor point", "command", kind)
}
