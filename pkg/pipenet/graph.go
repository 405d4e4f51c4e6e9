package pipenet

import (
	"errors"
	"slices"

	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/logging"
)

// ErrInvalidVolume is returned when a segment is spawned with a negative volume.
var ErrInvalidVolume = errors.New("volume must not be negative")

// Graph is the registry that owns every segment and network. It is not
// safe for concurrent use and its mutations are not reentrant; the host
// must serialize calls.
type Graph struct {
	segments map[SegmentID]*Segment
	networks map[NetworkID]*Network

	// ID generators
	nextSegmentID SegmentID
	nextNetworkID NetworkID

	observer      Observer
	logger        logging.Logger
	defaultVolume float64

	// set while a mutation is in progress
	mutating string

	merges    uint64
	splits    uint64
	created   uint64
	destroyed uint64
}

// GraphConfig holds optional collaborators for a Graph.
type GraphConfig struct {
	Observer      Observer
	Logger        logging.Logger
	DefaultVolume float64
}

// SegmentSpec describes a segment to spawn.
type SegmentSpec struct {
	Position grid.Point
	Facing   grid.Facing
	Volume   float64 // zero means the graph's default volume
}

// NewGraph creates an empty graph with no observer, logging to
// logging.DefaultLogger().
func NewGraph() *Graph {
	return NewGraphWithConfig(GraphConfig{})
}

// NewGraphWithConfig creates an empty graph with the given collaborators.
func NewGraphWithConfig(cfg GraphConfig) *Graph {
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}
	if cfg.DefaultVolume <= 0 {
		cfg.DefaultVolume = DefaultVolume
	}

	return &Graph{
		segments:      make(map[SegmentID]*Segment),
		networks:      make(map[NetworkID]*Network),
		nextSegmentID: 1,
		nextNetworkID: 1,
		observer:      cfg.Observer,
		logger:        cfg.Logger.With(logging.Component("pipenet")),
		defaultVolume: cfg.DefaultVolume,
	}
}

// Spawn creates a new unanchored segment.
func (g *Graph) Spawn(spec SegmentSpec) (*Segment, error) {
	if !spec.Facing.Valid() {
		return nil, NewError("spawn").At(spec.Position).Cause(ErrInvalidFacing).Err()
	}
	if spec.Volume < 0 {
		return nil, NewError("spawn").At(spec.Position).Cause(ErrInvalidVolume).Err()
	}
	g.begin("spawn")
	defer g.end()

	volume := spec.Volume
	if volume == 0 {
		volume = g.defaultVolume
	}

	s := &Segment{
		ID:       g.nextSegmentID,
		Position: spec.Position,
		Facing:   spec.Facing,
		Volume:   volume,
		live:     true,
	}
	g.nextSegmentID++
	g.segments[s.ID] = s

	g.logger.Debug("segment spawned",
		logging.SegmentID(uint64(s.ID)),
		logging.Position(s.Position),
		logging.Facing(s.Facing))
	return s, nil
}

// Despawn destroys a segment, detaching it first if it is anchored.
func (g *Graph) Despawn(s *Segment) error {
	if err := g.owned("despawn", s); err != nil {
		return err
	}
	g.begin("despawn")
	defer g.end()

	if s.anchored {
		g.detach(s)
	}
	s.live = false
	delete(g.segments, s.ID)

	g.logger.Debug("segment despawned", logging.SegmentID(uint64(s.ID)))
	return nil
}

// Move relocates an unanchored segment.
func (g *Graph) Move(s *Segment, p grid.Point) error {
	if err := g.owned("move", s); err != nil {
		return err
	}
	if s.anchored {
		return InvalidStateError("move", s)
	}
	g.begin("move")
	defer g.end()

	s.Position = p
	return nil
}

// Rotate changes the facing of an unanchored segment.
func (g *Graph) Rotate(s *Segment, f grid.Facing) error {
	if err := g.owned("rotate", s); err != nil {
		return err
	}
	if !f.Valid() {
		return NewError("rotate").Segment(s.ID).Cause(ErrInvalidFacing).Err()
	}
	if s.anchored {
		return InvalidStateError("rotate", s)
	}
	g.begin("rotate")
	defer g.end()

	s.Facing = f
	return nil
}

// Segment looks up a live segment by ID.
func (g *Graph) Segment(id SegmentID) (*Segment, error) {
	s, ok := g.segments[id]
	if !ok {
		return nil, SegmentNotFoundError("get", id)
	}
	return s, nil
}

// Segments returns every live segment in ascending ID order.
func (g *Graph) Segments() []*Segment {
	out := make([]*Segment, 0, len(g.segments))
	for _, s := range g.segments {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Segment) int { return compareIDs(a.ID, b.ID) })
	return out
}

// Network looks up a live network by ID.
func (g *Graph) Network(id NetworkID) (*Network, bool) {
	n, ok := g.networks[id]
	return n, ok
}

// Networks returns every live network in ascending ID order.
func (g *Graph) Networks() []*Network {
	out := make([]*Network, 0, len(g.networks))
	for _, n := range g.networks {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Network) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// Stats returns a summary of the graph.
func (g *Graph) Stats() Stats {
	anchored := 0
	for _, s := range g.segments {
		if s.anchored {
			anchored++
		}
	}
	return Stats{
		Segments:  len(g.segments),
		Anchored:  anchored,
		Networks:  len(g.networks),
		Merges:    g.merges,
		Splits:    g.splits,
		Created:   g.created,
		Destroyed: g.destroyed,
	}
}

// owned checks that s is a live segment of this graph.
func (g *Graph) owned(op string, s *Segment) error {
	if s == nil {
		return SegmentNotFoundError(op, 0)
	}
	if cur, ok := g.segments[s.ID]; !ok || cur != s {
		return SegmentNotFoundError(op, s.ID)
	}
	return nil
}

func (g *Graph) begin(op string) {
	if g.mutating != "" {
		violation(op, "reentrant call while %s is in progress", g.mutating)
	}
	g.mutating = op
}

func (g *Graph) end() {
	g.mutating = ""
}

func (g *Graph) newNetwork() *Network {
	n := newNetwork(g.nextNetworkID)
	g.nextNetworkID++
	g.networks[n.id] = n
	g.created++
	return n
}

func (g *Graph) destroyNetwork(n *Network, kind NetworkEventKind, survivor NetworkID) {
	delete(g.networks, n.id)
	n.destroyed = true

	if kind == NetworkDestroyed {
		g.destroyed++
		g.logger.Debug("network destroyed", logging.NetworkID(uint64(n.id)))
		g.observer.OnNetworkEvent(NetworkEvent{Kind: NetworkDestroyed, Network: n.id})
		return
	}

	g.merges++
	target := g.networks[survivor]
	g.logger.Debug("network merged",
		logging.NetworkID(uint64(survivor)),
		logging.Uint64("absorbed", uint64(n.id)),
		logging.Count(target.Len()))
	g.observer.OnNetworkEvent(NetworkEvent{Kind: NetworkMerged, Network: survivor, Other: n.id, Size: target.Len()})
}
