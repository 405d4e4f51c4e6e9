package pipenet

import (
	"container/list"
	"slices"
)

// Network is a maximal connected set of anchored segments.
type Network struct {
	id        NetworkID
	members   map[SegmentID]*Segment
	destroyed bool
}

func newNetwork(id NetworkID) *Network {
	return &Network{
		id:      id,
		members: make(map[SegmentID]*Segment),
	}
}

// ID returns the network's identifier.
func (n *Network) ID() NetworkID {
	return n.id
}

// Len returns the number of member segments.
func (n *Network) Len() int {
	return len(n.members)
}

// Destroyed reports whether the network has been emptied and discarded.
func (n *Network) Destroyed() bool {
	return n.destroyed
}

// Contains reports whether s is a member of the network.
func (n *Network) Contains(s *Segment) bool {
	m, ok := n.members[s.ID]
	return ok && m == s
}

// Members returns the member segment IDs in ascending order.
func (n *Network) Members() []SegmentID {
	ids := make([]SegmentID, 0, len(n.members))
	for id := range n.members {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Volume returns the combined volume of all member segments.
func (n *Network) Volume() float64 {
	total := 0.0
	for _, s := range n.members {
		total += s.Volume
	}
	return total
}

// AddMember inserts s and points its back reference at n. Adding an
// existing member is a no-op.
func (n *Network) AddMember(s *Segment) {
	n.members[s.ID] = s
	s.network = n
}

// RemoveMember drops s from the member set. Emptiness and splitting are
// the caller's concern.
func (n *Network) RemoveMember(s *Segment) {
	if n.members[s.ID] != s {
		return
	}
	delete(n.members, s.ID)
	if s.network == n {
		s.network = nil
	}
}

// Absorb moves every member of other into n. other is left empty.
func (n *Network) Absorb(other *Network) {
	if other == n {
		return
	}
	for _, s := range other.members {
		n.AddMember(s)
	}
	clear(other.members)
}

// Components partitions the members into connected components over the
// neighbor relation. Traversal starts from members in ascending ID order,
// so the result is deterministic. Adjacency that points outside the
// network or is not symmetric panics with an InvariantViolation.
func (n *Network) Components() [][]*Segment {
	starts := n.Members()
	visited := make(map[SegmentID]bool, len(starts))
	components := make([][]*Segment, 0, 1)

	for _, startID := range starts {
		if visited[startID] {
			continue
		}

		component := make([]*Segment, 0)
		queue := list.New()
		queue.PushBack(n.members[startID])
		visited[startID] = true

		for queue.Len() > 0 {
			s, ok := queue.Remove(queue.Front()).(*Segment)
			if !ok {
				continue
			}
			component = append(component, s)

			for _, nb := range s.neighbors {
				if !nb.ConnectedTo(s) {
					violation("split", "segment %d lists %d as neighbor but not vice versa", s.ID, nb.ID)
				}
				if !nb.anchored || !n.Contains(nb) {
					violation("split", "segment %d in network %d has neighbor %d outside it", s.ID, n.id, nb.ID)
				}
				if !visited[nb.ID] {
					visited[nb.ID] = true
					queue.PushBack(nb)
				}
			}
		}

		slices.SortFunc(component, func(a, b *Segment) int { return compareIDs(a.ID, b.ID) })
		components = append(components, component)
	}

	return components
}

func compareIDs(a, b SegmentID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
