package tess

import (
	"strings"
	"testing"
)

// buildTestDescriptors makes a mixed descriptor batch big enough to
// trigger parallel dispatch.
func buildTestDescriptors(t *testing.T, n int) ([]Descriptor, int) {
	t.Helper()

	p := NewPath()
	for i := 0; i < n; i++ {
		x := float32(i * 100)
		p.MoveTo(x, 0)
		p.LineTo(x+80, 0)
		p.QuadraticTo(x+90, 40, x+80, 80)
		p.CubicTo(x+60, 100, x+20, 100, x, 80)
		p.Close()
	}

	segs := ExtractSegments(p.Commands())
	descs, total, err := BuildDescriptors(segs, 4, 2, 4)
	if err != nil {
		t.Fatalf("BuildDescriptors: %v", err)
	}
	return descs, total
}

func TestSequentialExecutor(t *testing.T) {
	descs, total := buildTestDescriptors(t, 2)
	buf := make([]VertexRecord, total)

	if err := (SequentialExecutor{}).Execute(descs, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Every non-empty descriptor range must have been written
	for i, d := range descs {
		if d.VertexCount == 0 {
			continue
		}
		first := buf[d.VertexIndex].Vertex()
		if !pointsEqual(Pt(first.X, first.Y), d.P0, halfEps) {
			t.Errorf("descriptor %d first vertex = %+v, want %v", i, first, d.P0)
		}
	}
}

func TestParallelExecutor_MatchesSequential(t *testing.T) {
	descs, total := buildTestDescriptors(t, 10)

	seqBuf := make([]VertexRecord, total)
	if err := (SequentialExecutor{}).Execute(descs, seqBuf); err != nil {
		t.Fatalf("sequential Execute: %v", err)
	}

	par := NewParallelExecutor(4)
	defer par.Close()
	par.SetThreshold(1)

	parBuf := make([]VertexRecord, total)
	if err := par.Execute(descs, parBuf); err != nil {
		t.Fatalf("parallel Execute: %v", err)
	}

	// Bit-identical output regardless of executor
	for i := range seqBuf {
		if seqBuf[i] != parBuf[i] {
			t.Fatalf("records differ at %d: %+v vs %+v", i, seqBuf[i], parBuf[i])
		}
	}
}

func TestParallelExecutor_SmallBatchSequentialPath(t *testing.T) {
	descs, total := buildTestDescriptors(t, 1)

	par := NewParallelExecutor(2)
	defer par.Close()
	// Default threshold: a handful of descriptors stays on the calling
	// goroutine, output identical either way.
	buf := make([]VertexRecord, total)
	if err := par.Execute(descs, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := make([]VertexRecord, total)
	if err := (SequentialExecutor{}).Execute(descs, want); err != nil {
		t.Fatalf("sequential Execute: %v", err)
	}
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("records differ at %d", i)
		}
	}
}

func TestParallelExecutor_AfterClose(t *testing.T) {
	descs, total := buildTestDescriptors(t, 5)

	par := NewParallelExecutor(2)
	par.SetThreshold(1)
	par.Close()

	// Closed pool falls back to sequential evaluation
	buf := make([]VertexRecord, total)
	if err := par.Execute(descs, buf); err != nil {
		t.Fatalf("Execute after Close: %v", err)
	}
	if total > 0 {
		d := descs[0]
		first := buf[d.VertexIndex].Vertex()
		if !pointsEqual(Pt(first.X, first.Y), d.P0, halfEps) {
			t.Errorf("first vertex = %+v, want %v", first, d.P0)
		}
	}
}

func TestExecutor_BoundsValidation(t *testing.T) {
	descs := []Descriptor{{
		Kind:        KindLine,
		VertexCount: 10,
		VertexIndex: 0,
		P0:          Pt(0, 0),
		P1:          Pt(80, 0),
	}}

	buf := make([]VertexRecord, 5) // too small
	err := (SequentialExecutor{}).Execute(descs, buf)
	if err == nil {
		t.Fatal("expected bounds error, got nil")
	}
	if !strings.Contains(err.Error(), "exceeds buffer size") {
		t.Errorf("err = %v, want bounds message", err)
	}

	par := NewParallelExecutor(2)
	defer par.Close()
	if err := par.Execute(descs, buf); err == nil {
		t.Fatal("expected bounds error from parallel executor, got nil")
	}
}
