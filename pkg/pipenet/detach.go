package pipenet

import "github.com/dd0wney/pipenet/pkg/logging"

// Detach unanchors s, removing all of its connections. Its network is
// destroyed if s was the last member, left alone if s was a leaf, and
// otherwise split into one network per remaining connected component.
func (g *Graph) Detach(s *Segment) error {
	if err := g.owned("detach", s); err != nil {
		return err
	}
	if !s.anchored {
		return InvalidStateError("detach", s)
	}
	g.begin("detach")
	defer g.end()

	g.detach(s)
	return nil
}

func (g *Graph) detach(s *Segment) {
	net := s.network
	if net == nil || !net.Contains(s) {
		violation("detach", "anchored segment %d is not a member of its network", s.ID)
	}

	former := s.neighbors
	s.neighbors = nil
	for _, nb := range former {
		if !nb.ConnectedTo(s) {
			violation("detach", "segment %d lists %d as neighbor but not vice versa", s.ID, nb.ID)
		}
		nb.unlink(s)
	}

	net.RemoveMember(s)
	s.anchored = false
	s.network = nil

	switch {
	case net.Len() == 0:
		g.destroyNetwork(net, NetworkDestroyed, 0)
	case len(former) == 1:
		// s was a leaf; what remains is still connected
	default:
		g.split(net)
	}

	g.observer.OnTopologyChanged(s)
	for _, nb := range former {
		g.observer.OnTopologyChanged(nb)
	}
}

// Split recomputes the connected components of n. The largest component
// stays in n (ties go to the component found first in ascending segment
// ID order) and every other component moves to a new network. The
// returned slice always starts with n.
func (g *Graph) Split(n *Network) []*Network {
	if n == nil || n.destroyed || g.networks[n.id] != n {
		return nil
	}
	g.begin("split")
	defer g.end()

	return g.split(n)
}

func (g *Graph) split(n *Network) []*Network {
	components := n.Components()
	if len(components) <= 1 {
		return []*Network{n}
	}

	keep := 0
	for i, c := range components {
		if len(c) > len(components[keep]) {
			keep = i
		}
	}

	result := []*Network{n}
	for i, c := range components {
		if i == keep {
			continue
		}
		fresh := g.newNetwork()
		for _, s := range c {
			n.RemoveMember(s)
			fresh.AddMember(s)
		}
		g.splits++
		g.logger.Debug("network split",
			logging.NetworkID(uint64(n.id)),
			logging.Uint64("split_off", uint64(fresh.id)),
			logging.Count(fresh.Len()))
		g.observer.OnNetworkEvent(NetworkEvent{Kind: NetworkSplit, Network: n.id, Other: fresh.id, Size: fresh.Len()})
		result = append(result, fresh)
	}
	return result
}
