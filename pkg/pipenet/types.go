package pipenet

import (
	"slices"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// DefaultVolume is the volume a segment holds when none is given.
const DefaultVolume = 70.0

// SegmentID is the stable arena handle of a segment. IDs start at 1 and
// are never reused, so zero is never a valid handle.
type SegmentID uint64

// NetworkID identifies a network for as long as it exists.
type NetworkID uint64

// Segment is a single connectable unit occupying one grid cell.
//
// Segments are owned by the Graph that spawned them; callers hold
// pointers only as handles and mutate them through the Graph.
type Segment struct {
	ID       SegmentID
	Position grid.Point
	Facing   grid.Facing
	Volume   float64

	anchored  bool
	neighbors []*Segment
	network   *Network
	live      bool
}

// Anchored reports whether the segment is fixed in place and part of a network.
func (s *Segment) Anchored() bool {
	return s.anchored
}

// Live reports whether the segment has not been despawned.
func (s *Segment) Live() bool {
	return s.live
}

// Network returns the network the segment belongs to, or nil while unanchored.
func (s *Segment) Network() *Network {
	return s.network
}

// Neighbors returns the IDs of the segments currently connected to s,
// in ascending order.
func (s *Segment) Neighbors() []SegmentID {
	ids := make([]SegmentID, 0, len(s.neighbors))
	for _, n := range s.neighbors {
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)
	return ids
}

// ConnectedTo reports whether other is one of the segment's neighbors.
func (s *Segment) ConnectedTo(other *Segment) bool {
	return slices.Contains(s.neighbors, other)
}

func (s *Segment) link(other *Segment) {
	if !s.ConnectedTo(other) {
		s.neighbors = append(s.neighbors, other)
	}
}

func (s *Segment) unlink(other *Segment) {
	s.neighbors = slices.DeleteFunc(s.neighbors, func(n *Segment) bool { return n == other })
}

// GridQuery resolves a grid cell to the anchored segments occupying it.
type GridQuery interface {
	At(p grid.Point) []*Segment
}

// GridQueryFunc adapts a plain function to GridQuery.
type GridQueryFunc func(p grid.Point) []*Segment

// At calls f(p).
func (f GridQueryFunc) At(p grid.Point) []*Segment {
	return f(p)
}

// NetworkEventKind enumerates network lifecycle transitions.
type NetworkEventKind int

const (
	NetworkCreated NetworkEventKind = iota
	NetworkMerged
	NetworkSplit
	NetworkDestroyed
)

func (k NetworkEventKind) String() string {
	switch k {
	case NetworkCreated:
		return "created"
	case NetworkMerged:
		return "merged"
	case NetworkSplit:
		return "split"
	case NetworkDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// NetworkEvent describes a single network lifecycle transition.
//
// For NetworkMerged, Network is the surviving network and Other the one
// that was absorbed. For NetworkSplit, Network is the original network
// and Other the network created for a split-off component.
type NetworkEvent struct {
	Kind    NetworkEventKind
	Network NetworkID
	Other   NetworkID
	Size    int
}

// Observer receives topology notifications. Calls are fire-and-forget and
// happen while the Graph is mid-mutation: an Observer must not call back
// into the Graph.
type Observer interface {
	// OnTopologyChanged is called for every segment whose adjacency or
	// anchored state changed.
	OnTopologyChanged(s *Segment)
	// OnNetworkEvent is called for every network lifecycle transition.
	OnNetworkEvent(ev NetworkEvent)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) OnTopologyChanged(*Segment)  {}
func (NopObserver) OnNetworkEvent(NetworkEvent) {}

// Stats is a point-in-time summary of a Graph.
type Stats struct {
	Segments  int
	Anchored  int
	Networks  int
	Merges    uint64
	Splits    uint64
	Created   uint64
	Destroyed uint64
}
