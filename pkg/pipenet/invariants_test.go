package pipenet

import (
	"strings"
	"testing"

	"github.com/dd0wney/pipenet/pkg/grid"
)

func TestCheckInvariants_DetectsAsymmetry(t *testing.T) {
	g, q, _ := setupGraph(t)
	segs := line(t, g, q, 2)

	segs[1].unlink(segs[0])

	err := g.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "not symmetric") {
		t.Fatalf("expected asymmetry to be reported, got %v", err)
	}
}

func TestCheckInvariants_DetectsStaleNetwork(t *testing.T) {
	g, q, _ := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)

	a.network.RemoveMember(a)

	if err := g.CheckInvariants(); err == nil {
		t.Fatal("expected violation for anchored segment without network")
	}
}

func TestSplit_PanicsOnAsymmetricAdjacency(t *testing.T) {
	g, q, _ := setupGraph(t)
	segs := line(t, g, q, 3)

	segs[2].unlink(segs[1])

	v := expectPanic(t, func() { g.Split(segs[0].Network()) })
	if v.Op != "split" {
		t.Errorf("violation op = %q, want split", v.Op)
	}
}

type reentrantObserver struct {
	NopObserver
	g      *Graph
	target *Segment
}

func (r *reentrantObserver) OnTopologyChanged(*Segment) {
	if r.target != nil {
		r.g.Detach(r.target)
	}
}

func TestAttach_ReentrantMutationPanics(t *testing.T) {
	obs := &reentrantObserver{}
	g := NewGraphWithConfig(GraphConfig{Observer: obs})
	obs.g = g
	q := gridOf(g)

	a := place(t, g, q, 0, 0, grid.North)
	obs.target = a

	b := spawn(t, g, 0, 1, grid.North)
	v := expectPanic(t, func() { g.Attach(b, q) })
	if !strings.Contains(v.Detail, "reentrant") {
		t.Errorf("unexpected violation: %v", v)
	}
}
