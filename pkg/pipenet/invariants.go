package pipenet

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// CheckInvariants walks the whole graph and returns every structural
// inconsistency it finds, joined into one error. A healthy graph returns nil.
func (g *Graph) CheckInvariants() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, s := range g.Segments() {
		if !s.anchored {
			if s.network != nil {
				fail("unanchored segment %d references network %d", s.ID, s.network.id)
			}
			if len(s.neighbors) > 0 {
				fail("unanchored segment %d has %d neighbors", s.ID, len(s.neighbors))
			}
			continue
		}

		if s.network == nil {
			fail("anchored segment %d has no network", s.ID)
			continue
		}
		if g.networks[s.network.id] != s.network {
			fail("segment %d references unregistered network %d", s.ID, s.network.id)
		}
		if !s.network.Contains(s) {
			fail("segment %d is not a member of its network %d", s.ID, s.network.id)
		}

		adjacent := grid.Adjacent(s.Position, s.Facing)
		for _, nb := range s.neighbors {
			if !nb.ConnectedTo(s) {
				fail("adjacency %d -> %d is not symmetric", s.ID, nb.ID)
			}
			if !nb.anchored {
				fail("segment %d has unanchored neighbor %d", s.ID, nb.ID)
			}
			if nb.network != s.network {
				fail("neighbors %d and %d are in different networks", s.ID, nb.ID)
			}
			if !grid.Compatible(s.Facing, nb.Facing) {
				fail("neighbors %d and %d face incompatible axes", s.ID, nb.ID)
			}
			if !slices.Contains(adjacent[:], nb.Position) {
				fail("neighbor %d of %d is not in an adjacent cell", nb.ID, s.ID)
			}
		}
	}

	for _, n := range g.Networks() {
		if n.Len() == 0 {
			fail("network %d is empty but still registered", n.id)
			continue
		}
		for id, s := range n.members {
			if s.ID != id || s.network != n || !s.anchored || !s.live {
				fail("network %d holds stale member %d", n.id, id)
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	// Connectivity is only meaningful once adjacency is known to be sound.
	for _, n := range g.Networks() {
		if c := n.Components(); len(c) != 1 {
			errs = append(errs, fmt.Errorf("network %d spans %d components", n.id, len(c)))
		}
	}
	return errors.Join(errs...)
}
