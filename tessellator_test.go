package tess

import (
	"errors"
	"testing"
)

func TestTessellate_HorizontalLine(t *testing.T) {
	ts := New()
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)

	res, err := ts.Tessellate(p, 4, 4)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	descs := res.Descriptors()
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}
	if descs[0].Kind != KindLine {
		t.Errorf("Kind = %v, want %v", descs[0].Kind, KindLine)
	}
	if descs[0].VertexCount != 10 {
		t.Errorf("VertexCount = %d, want 10", descs[0].VertexCount)
	}
	if descs[0].VertexIndex != 0 {
		t.Errorf("VertexIndex = %d, want 0", descs[0].VertexIndex)
	}
	if res.VertexCount() != 10 {
		t.Fatalf("VertexCount = %d, want 10", res.VertexCount())
	}

	vertices := res.Vertices()
	for i, v := range vertices {
		if !floatsEqual(v.Y, 0, halfEps) {
			t.Errorf("vertices[%d].Y = %v, want 0", i, v.Y)
		}
		if v.X < -halfEps || v.X > 80+halfEps {
			t.Errorf("vertices[%d].X = %v out of [0, 80]", i, v.X)
		}
		if !floatsEqual(v.Width, 4, halfEps) {
			t.Errorf("vertices[%d].Width = %v, want 4", i, v.Width)
		}
	}
	if !floatsEqual(vertices[0].X, 0, halfEps) {
		t.Errorf("first X = %v, want 0", vertices[0].X)
	}
	if !floatsEqual(vertices[9].X, 80, halfEps) {
		t.Errorf("last X = %v, want 80", vertices[9].X)
	}
}

func TestTessellate_ShortSegmentEmitsNothing(t *testing.T) {
	ts := New()
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(3, 0) // shorter than the step

	res, err := ts.Tessellate(p, 1, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.VertexCount() != 0 {
		t.Errorf("VertexCount = %d, want 0", res.VertexCount())
	}
	// The descriptor still exists, with an empty range
	if len(res.Descriptors()) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(res.Descriptors()))
	}
	if res.Descriptors()[0].VertexCount != 0 {
		t.Errorf("VertexCount = %d, want 0", res.Descriptors()[0].VertexCount)
	}
}

func TestTessellate_ClosedTriangle(t *testing.T) {
	ts := New()
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)
	p.Close()

	res, err := ts.Tessellate(p, 2, 2)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	// LineTo plus the closing edge back to the anchor
	descs := res.Descriptors()
	if len(descs) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(descs))
	}
	if descs[0].VertexIndex != 0 {
		t.Errorf("descs[0].VertexIndex = %d, want 0", descs[0].VertexIndex)
	}
	if int(descs[1].VertexIndex) != int(descs[0].VertexCount) {
		t.Errorf("descs[1].VertexIndex = %d, want %d", descs[1].VertexIndex, descs[0].VertexCount)
	}
	if res.VertexCount() != int(descs[0].VertexCount)+int(descs[1].VertexCount) {
		t.Errorf("VertexCount = %d, want %d", res.VertexCount(),
			int(descs[0].VertexCount)+int(descs[1].VertexCount))
	}
}

func TestTessellate_DrawWithoutAnchor(t *testing.T) {
	ts := New()
	defer ts.Close()

	// Draw commands with no preceding MoveTo are dropped
	commands := []PathCommand{
		LineTo{Point: Pt(80, 0)},
		QuadTo{Control: Pt(10, 10), Point: Pt(20, 0)},
	}
	res, err := ts.TessellateCommands(commands, 1, 1)
	if err != nil {
		t.Fatalf("TessellateCommands: %v", err)
	}
	if len(res.Descriptors()) != 0 || res.VertexCount() != 0 {
		t.Errorf("got %d descriptors, %d vertices, want empty result",
			len(res.Descriptors()), res.VertexCount())
	}
}

func TestTessellate_EmptyInputs(t *testing.T) {
	ts := New()
	defer ts.Close()

	for _, p := range []*Path{nil, NewPath()} {
		res, err := ts.Tessellate(p, 1, 1)
		if err != nil {
			t.Fatalf("Tessellate: %v", err)
		}
		if res.VertexCount() != 0 || len(res.Descriptors()) != 0 {
			t.Errorf("non-empty result for empty path")
		}
	}
}

func TestTessellate_Idempotent(t *testing.T) {
	ts := New()
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(30, 60, 70, 60, 100, 0)
	p.QuadraticTo(110, -20, 120, 0)

	first, err := ts.Tessellate(p, 3, 5)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	second, err := ts.Tessellate(p, 3, 5)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	if first.VertexCount() != second.VertexCount() {
		t.Fatalf("vertex counts differ: %d vs %d", first.VertexCount(), second.VertexCount())
	}
	a, b := first.Records(), second.Records()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("records differ at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestTessellate_TooManyVertices(t *testing.T) {
	ts := New(WithStep(0.001))
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1000, 0)

	_, err := ts.Tessellate(p, 1, 1)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("err = %v, want ErrTooManyVertices", err)
	}
}

func TestTessellate_WithWorkers(t *testing.T) {
	seq := New()
	defer seq.Close()
	par := New(WithWorkers(4), WithParallelThreshold(1))
	defer par.Close()

	p := NewPath()
	for i := 0; i < 8; i++ {
		x := float32(i * 50)
		p.MoveTo(x, 0)
		p.CubicTo(x+10, 40, x+30, 40, x+40, 0)
	}

	seqRes, err := seq.Tessellate(p, 2, 4)
	if err != nil {
		t.Fatalf("sequential Tessellate: %v", err)
	}
	parRes, err := par.Tessellate(p, 2, 4)
	if err != nil {
		t.Fatalf("parallel Tessellate: %v", err)
	}

	a, b := seqRes.Records(), parRes.Records()
	if len(a) != len(b) {
		t.Fatalf("record counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("records differ at %d", i)
		}
	}
}

func TestTessellate_CustomExecutor(t *testing.T) {
	exec := NewParallelExecutor(2)
	defer exec.Close()

	ts := New(WithExecutor(exec))
	ts.Close() // must not close the caller-supplied executor

	if !exec.pool.IsRunning() {
		t.Fatal("caller-supplied executor closed by Tessellator.Close")
	}

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)
	res, err := ts.Tessellate(p, 1, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.VertexCount() != 10 {
		t.Errorf("VertexCount = %d, want 10", res.VertexCount())
	}
}

func TestTessellate_StepOption(t *testing.T) {
	ts := New(WithStep(4))
	defer ts.Close()
	if ts.Step() != 4 {
		t.Fatalf("Step = %v, want 4", ts.Step())
	}

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)
	res, err := ts.Tessellate(p, 1, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.VertexCount() != 20 {
		t.Errorf("VertexCount = %d, want 20", res.VertexCount())
	}

	// Non-positive step falls back to the default
	fallback := New(WithStep(-1))
	defer fallback.Close()
	if fallback.Step() != DefaultStep {
		t.Errorf("Step = %v, want %v", fallback.Step(), DefaultStep)
	}
}

func TestResult_All(t *testing.T) {
	ts := New()
	defer ts.Close()

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)

	res, err := ts.Tessellate(p, 1, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}

	var collected []Vertex
	for v := range res.All() {
		collected = append(collected, v)
	}
	want := res.Vertices()
	if len(collected) != len(want) {
		t.Fatalf("iterated %d vertices, want %d", len(collected), len(want))
	}
	for i := range want {
		if collected[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, collected[i], want[i])
		}
	}

	// Early break must not panic
	for range res.All() {
		break
	}
}

func TestTessellatorPool(t *testing.T) {
	pool := NewTessellatorPool(WithStep(4))

	ts := pool.Get()
	if ts.Step() != 4 {
		t.Errorf("Step = %v, want 4", ts.Step())
	}

	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(80, 0)
	res, err := ts.Tessellate(p, 1, 1)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if res.VertexCount() != 20 {
		t.Errorf("VertexCount = %d, want 20", res.VertexCount())
	}

	pool.Put(ts)
	pool.Put(nil) // no-op

	again := pool.Get()
	if again.Step() != 4 {
		t.Errorf("Step after reuse = %v, want 4", again.Step())
	}
	pool.Put(again)
}
