package pipenet

import (
	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/logging"
)

// AnchoredAt returns the first anchored segment in cell p, as reported by
// q, whose facing shares an axis with f. exclude is never returned.
func (g *Graph) AnchoredAt(q GridQuery, p grid.Point, f grid.Facing, exclude *Segment) *Segment {
	for _, s := range q.At(p) {
		if s == nil || s == exclude || !s.anchored {
			continue
		}
		if cur, ok := g.segments[s.ID]; !ok || cur != s {
			continue
		}
		if grid.Compatible(s.Facing, f) {
			return s
		}
	}
	return nil
}

// Attach anchors s, connecting it to every anchored axis-compatible
// segment in its two adjacent cells and joining their networks.
//
// It fails with an invalid state error if s is already anchored and with
// a collision error if its own cell already holds an anchored segment on
// the same axis. Neither failure mutates anything.
func (g *Graph) Attach(s *Segment, q GridQuery) error {
	if err := g.owned("attach", s); err != nil {
		return err
	}
	if s.anchored {
		return InvalidStateError("attach", s)
	}
	if occupant := g.AnchoredAt(q, s.Position, s.Facing, s); occupant != nil {
		return CollisionError(s, occupant)
	}
	g.begin("attach")
	defer g.end()

	found := make([]*Segment, 0, 2)
	for _, cell := range grid.Adjacent(s.Position, s.Facing) {
		nb := g.AnchoredAt(q, cell, s.Facing, s)
		if nb == nil || s.ConnectedTo(nb) {
			continue
		}
		if nb.network == nil {
			violation("attach", "anchored segment %d has no network", nb.ID)
		}
		s.link(nb)
		nb.link(s)
		found = append(found, nb)
	}

	// The first neighbor's network survives; every other distinct
	// neighbor network is folded into it.
	var target *Network
	for _, nb := range found {
		if target == nil {
			target = nb.network
			continue
		}
		if other := nb.network; other != target {
			target.Absorb(other)
			g.destroyNetwork(other, NetworkMerged, target.id)
		}
	}

	fresh := target == nil
	if fresh {
		target = g.newNetwork()
	}
	target.AddMember(s)
	s.anchored = true

	if fresh {
		g.logger.Debug("network created", logging.NetworkID(uint64(target.id)))
		g.observer.OnNetworkEvent(NetworkEvent{Kind: NetworkCreated, Network: target.id, Size: target.Len()})
	}

	g.observer.OnTopologyChanged(s)
	for _, nb := range found {
		g.observer.OnTopologyChanged(nb)
	}
	return nil
}
