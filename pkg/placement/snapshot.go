package placement

import (
	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/pipenet"
)

// SegmentView is a read-only copy of a segment's state.
type SegmentView struct {
	ID        pipenet.SegmentID
	Position  grid.Point
	Facing    grid.Facing
	Volume    float64
	Anchored  bool
	Network   pipenet.NetworkID
	Neighbors []pipenet.SegmentID
}

// NetworkView is a read-only copy of a network's state.
type NetworkView struct {
	ID      pipenet.NetworkID
	Members []pipenet.SegmentID
	Volume  float64
}

// Snapshot is a consistent copy of the whole topology.
type Snapshot struct {
	Segments []SegmentView
	Networks []NetworkView
	Stats    pipenet.Stats
}

func viewOf(s *pipenet.Segment) SegmentView {
	v := SegmentView{
		ID:        s.ID,
		Position:  s.Position,
		Facing:    s.Facing,
		Volume:    s.Volume,
		Anchored:  s.Anchored(),
		Neighbors: s.Neighbors(),
	}
	if n := s.Network(); n != nil {
		v.Network = n.ID()
	}
	return v
}

// Segment returns a copy of one segment.
func (c *Controller) Segment(id pipenet.SegmentID) (SegmentView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.graph.Segment(id)
	if err != nil {
		return SegmentView{}, err
	}
	return viewOf(s), nil
}

// At returns copies of every segment in cell p, anchored or not.
func (c *Controller) At(p grid.Point) []SegmentView {
	c.mu.Lock()
	defer c.mu.Unlock()

	occupants := c.world.Occupants(p)
	out := make([]SegmentView, 0, len(occupants))
	for _, s := range occupants {
		out = append(out, viewOf(s))
	}
	return out
}

// Snapshot copies every segment and network.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Stats: c.graph.Stats()}
	for _, s := range c.graph.Segments() {
		snap.Segments = append(snap.Segments, viewOf(s))
	}
	for _, n := range c.graph.Networks() {
		snap.Networks = append(snap.Networks, NetworkView{
			ID:      n.ID(),
			Members: n.Members(),
			Volume:  n.Volume(),
		})
	}
	return snap
}

// CheckInvariants verifies the underlying graph.
func (c *Controller) CheckInvariants() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph.CheckInvariants()
}
