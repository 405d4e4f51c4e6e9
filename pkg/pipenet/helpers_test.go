package pipenet

import (
	"errors"
	"testing"

	"github.com/dd0wney/pipenet/pkg/grid"
)

type recorder struct {
	touched []SegmentID
	events  []NetworkEvent
}

func (r *recorder) OnTopologyChanged(s *Segment) {
	r.touched = append(r.touched, s.ID)
}

func (r *recorder) OnNetworkEvent(ev NetworkEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) reset() {
	r.touched = nil
	r.events = nil
}

func (r *recorder) count(kind NetworkEventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// gridOf answers cell queries by scanning the graph's own segments.
func gridOf(g *Graph) GridQuery {
	return GridQueryFunc(func(p grid.Point) []*Segment {
		var out []*Segment
		for _, s := range g.Segments() {
			if s.Position == p && s.Anchored() {
				out = append(out, s)
			}
		}
		return out
	})
}

func setupGraph(t *testing.T) (*Graph, GridQuery, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := NewGraphWithConfig(GraphConfig{Observer: rec})
	return g, gridOf(g), rec
}

func spawn(t *testing.T, g *Graph, x, y int, f grid.Facing) *Segment {
	t.Helper()
	s, err := g.Spawn(SegmentSpec{Position: grid.Pt(x, y), Facing: f})
	if err != nil {
		t.Fatalf("Spawn(%d,%d,%v) failed: %v", x, y, f, err)
	}
	return s
}

func place(t *testing.T, g *Graph, q GridQuery, x, y int, f grid.Facing) *Segment {
	t.Helper()
	s := spawn(t, g, x, y, f)
	if err := g.Attach(s, q); err != nil {
		t.Fatalf("Attach(%d,%d,%v) failed: %v", x, y, f, err)
	}
	return s
}

func mustHold(t *testing.T, g *Graph) {
	t.Helper()
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func expectPanic(t *testing.T, fn func()) *InvariantViolation {
	t.Helper()
	var got *InvariantViolation
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic, got none")
			}
			v, ok := r.(*InvariantViolation)
			if !ok {
				t.Fatalf("expected *InvariantViolation, got %T: %v", r, r)
			}
			got = v
		}()
		fn()
	}()
	return got
}

func asPipeError(err error, target **PipeError) bool {
	return errors.As(err, target)
}
