package pipenet

import (
	"slices"
	"testing"

	"github.com/dd0wney/pipenet/pkg/grid"
)

func TestAttach_LoneSegmentCreatesNetwork(t *testing.T) {
	g, q, rec := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)

	if !a.Anchored() {
		t.Fatal("segment should be anchored")
	}
	if a.Network() == nil || a.Network().Len() != 1 {
		t.Fatalf("expected a network of 1, got %v", a.Network())
	}
	if rec.count(NetworkCreated) != 1 {
		t.Errorf("expected 1 created event, got %d", rec.count(NetworkCreated))
	}
	mustHold(t, g)
}

func TestAttach_ConnectedLineFormsOneNetwork(t *testing.T) {
	g, q, _ := setupGraph(t)

	var segs []*Segment
	for y := 0; y < 5; y++ {
		f := grid.North
		if y%2 == 1 {
			f = grid.South
		}
		segs = append(segs, place(t, g, q, 0, y, f))
	}

	if got := len(g.Networks()); got != 1 {
		t.Fatalf("expected 1 network, got %d", got)
	}
	net := segs[0].Network()
	for _, s := range segs {
		if s.Network() != net {
			t.Errorf("segment %d is in network %d, want %d", s.ID, s.Network().ID(), net.ID())
		}
	}
	if net.Len() != 5 {
		t.Errorf("network size = %d, want 5", net.Len())
	}
	if !slices.Equal(segs[2].Neighbors(), []SegmentID{segs[1].ID, segs[3].ID}) {
		t.Errorf("middle neighbors = %v", segs[2].Neighbors())
	}
	mustHold(t, g)
}

func TestAttach_IncompatibleAxesStayApart(t *testing.T) {
	g, q, _ := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)
	b := place(t, g, q, 0, 1, grid.East)
	c := place(t, g, q, 1, 0, grid.East)

	if len(a.Neighbors()) != 0 || len(b.Neighbors()) != 0 || len(c.Neighbors()) != 0 {
		t.Errorf("no connections expected: %v %v %v", a.Neighbors(), b.Neighbors(), c.Neighbors())
	}
	if got := len(g.Networks()); got != 3 {
		t.Errorf("expected 3 networks, got %d", got)
	}
	mustHold(t, g)
}

func TestAttach_CrossingSegmentsShareCell(t *testing.T) {
	g, q, _ := setupGraph(t)
	place(t, g, q, 0, 0, grid.North)

	cross := spawn(t, g, 0, 0, grid.West)
	if err := g.Attach(cross, q); err != nil {
		t.Fatalf("perpendicular segment should not collide: %v", err)
	}
	mustHold(t, g)
}

func TestAttach_BridgeMergesBothNetworks(t *testing.T) {
	g, q, rec := setupGraph(t)
	left := place(t, g, q, 0, 0, grid.East)
	right := place(t, g, q, 2, 0, grid.West)
	far := place(t, g, q, 3, 0, grid.East)

	if left.Network() == right.Network() {
		t.Fatal("networks should be separate before bridging")
	}
	absorbed := left.Network()
	rec.reset()

	bridge := place(t, g, q, 1, 0, grid.East)

	if got := len(g.Networks()); got != 1 {
		t.Fatalf("expected 1 network after bridging, got %d", got)
	}
	net := bridge.Network()
	for _, s := range []*Segment{left, right, far, bridge} {
		if s.Network() != net {
			t.Errorf("segment %d left behind in network %d", s.ID, s.Network().ID())
		}
	}
	if net.Len() != 4 {
		t.Errorf("network size = %d, want 4", net.Len())
	}
	if !absorbed.Destroyed() {
		t.Error("absorbed network should be destroyed")
	}
	if rec.count(NetworkMerged) != 1 {
		t.Errorf("expected 1 merge event, got %d", rec.count(NetworkMerged))
	}
	if rec.count(NetworkCreated) != 0 {
		t.Errorf("bridging must not create a network, got %d", rec.count(NetworkCreated))
	}
	if g.Stats().Merges != 1 {
		t.Errorf("Stats().Merges = %d, want 1", g.Stats().Merges)
	}
	mustHold(t, g)
}

func TestAttach_Collision(t *testing.T) {
	g, q, _ := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)
	net := a.Network()

	b := spawn(t, g, 0, 0, grid.South)
	err := g.Attach(b, q)
	if !IsCollision(err) {
		t.Fatalf("expected collision error, got %v", err)
	}

	var pe *PipeError
	if !asPipeError(err, &pe) || pe.Other != a.ID {
		t.Errorf("collision should name occupant %d: %v", a.ID, err)
	}
	if b.Anchored() || b.Network() != nil || len(b.Neighbors()) != 0 {
		t.Error("rejected segment must be untouched")
	}
	if a.Network() != net || net.Len() != 1 || len(a.Neighbors()) != 0 {
		t.Error("occupant must be untouched")
	}
	mustHold(t, g)
}

func TestAttach_AlreadyAnchored(t *testing.T) {
	g, q, rec := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)
	rec.reset()

	if err := g.Attach(a, q); !IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if len(rec.touched) != 0 || len(rec.events) != 0 {
		t.Error("failed attach must not notify")
	}
}

func TestAttach_NotifiesNeighbors(t *testing.T) {
	g, q, rec := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)
	c := place(t, g, q, 0, 2, grid.North)
	rec.reset()

	b := place(t, g, q, 0, 1, grid.North)

	slices.Sort(rec.touched)
	want := []SegmentID{a.ID, b.ID, c.ID}
	slices.Sort(want)
	if !slices.Equal(rec.touched, want) {
		t.Errorf("touched = %v, want %v", rec.touched, want)
	}
}

func TestAttach_MembershipStableAcrossReads(t *testing.T) {
	g, q, _ := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.East)
	place(t, g, q, 1, 0, grid.East)

	first := a.Network().Members()
	for i := 0; i < 3; i++ {
		if again := a.Network().Members(); !slices.Equal(first, again) {
			t.Fatalf("read %d returned %v, want %v", i, again, first)
		}
	}
}

func TestAttach_IgnoresForeignSegments(t *testing.T) {
	g, _, _ := setupGraph(t)
	other := NewGraph()
	stranger, _ := other.Spawn(SegmentSpec{Position: grid.Pt(0, 1), Facing: grid.North})
	if err := other.Attach(stranger, gridOf(other)); err != nil {
		t.Fatal(err)
	}

	mixed := GridQueryFunc(func(p grid.Point) []*Segment {
		if p == stranger.Position {
			return []*Segment{stranger}
		}
		return nil
	})

	a := spawn(t, g, 0, 0, grid.North)
	if err := g.Attach(a, mixed); err != nil {
		t.Fatal(err)
	}
	if len(a.Neighbors()) != 0 {
		t.Error("segment from another graph must not be linked")
	}
}

func TestAttach_Volume(t *testing.T) {
	g, q, _ := setupGraph(t)
	a := place(t, g, q, 0, 0, grid.North)
	b, err := g.Spawn(SegmentSpec{Position: grid.Pt(0, 1), Facing: grid.North, Volume: 30})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Attach(b, q); err != nil {
		t.Fatal(err)
	}

	if got := a.Network().Volume(); got != DefaultVolume+30 {
		t.Errorf("network volume = %v, want %v", got, DefaultVolume+30)
	}
}
