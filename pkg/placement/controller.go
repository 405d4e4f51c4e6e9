package placement

import (
	"sync"

	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/logging"
	"github.com/dd0wney/pipenet/pkg/metrics"
	"github.com/dd0wney/pipenet/pkg/pipenet"
	"github.com/dd0wney/pipenet/pkg/pubsub"
	"github.com/dd0wney/pipenet/pkg/validation"
)

// Config holds the collaborators of a Controller. Every field is optional;
// a nil Logger means logging.DefaultLogger().
type Config struct {
	Logger        logging.Logger
	Metrics       *metrics.Registry
	Bus           *pubsub.Bus
	DefaultVolume float64
}

// Controller turns placement intents into graph mutations. It owns the
// spatial index and serializes every mutation behind one lock; the
// connectivity state itself lives in the pipenet.Graph.
type Controller struct {
	mu      sync.Mutex
	graph   *pipenet.Graph
	world   *World
	bus     *pubsub.Bus
	metrics *metrics.Registry
	logger  logging.Logger
}

// New creates a controller with an empty world.
func New(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger()
	}
	if cfg.Bus == nil {
		cfg.Bus = pubsub.NewBus(pubsub.DefaultBuffer)
	}

	c := &Controller{
		world:   NewWorld(),
		bus:     cfg.Bus,
		metrics: cfg.Metrics,
		logger:  cfg.Logger.With(logging.Component("placement")),
	}
	c.graph = pipenet.NewGraphWithConfig(pipenet.GraphConfig{
		Observer:      &fanout{bus: cfg.Bus, metrics: cfg.Metrics},
		Logger:        cfg.Logger,
		DefaultVolume: cfg.DefaultVolume,
	})
	return c
}

// Bus returns the event bus topology changes are published on.
func (c *Controller) Bus() *pubsub.Bus {
	return c.bus
}

// Close shuts the event bus down.
func (c *Controller) Close() {
	c.bus.Shutdown()
}

// Place spawns a new, unanchored segment.
func (c *Controller) Place(req validation.PlaceRequest) (pipenet.SegmentID, error) {
	var id pipenet.SegmentID
	err := c.run("place", 0, func() error {
		if err := validation.ValidatePlaceRequest(&req); err != nil {
			return err
		}
		facing, err := grid.ParseFacing(req.Facing)
		if err != nil {
			return err
		}
		s, err := c.graph.Spawn(pipenet.SegmentSpec{
			Position: req.Position(),
			Facing:   facing,
			Volume:   req.Volume,
		})
		if err != nil {
			return err
		}
		c.world.add(s)
		id = s.ID
		return nil
	})
	return id, err
}

// Anchor attaches a segment to the grid. A collision error means the cell
// already holds an anchored segment on the same axis; nothing changed.
func (c *Controller) Anchor(id pipenet.SegmentID) error {
	return c.run("anchor", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		return c.graph.Attach(s, c.world)
	})
}

// Unanchor detaches a segment, splitting its network if needed.
func (c *Controller) Unanchor(id pipenet.SegmentID) error {
	return c.run("unanchor", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		return c.graph.Detach(s)
	})
}

// Wrench toggles a segment: anchored segments are detached, loose ones
// attached. It reports the resulting anchored state.
func (c *Controller) Wrench(id pipenet.SegmentID) (bool, error) {
	var anchored bool
	err := c.run("wrench", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		if s.Anchored() {
			err = c.graph.Detach(s)
		} else {
			err = c.graph.Attach(s, c.world)
		}
		anchored = s.Anchored()
		return err
	})
	return anchored, err
}

// Move picks up a loose segment and puts it down at p.
func (c *Controller) Move(id pipenet.SegmentID, p grid.Point) error {
	return c.run("move", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		if s.Anchored() {
			return pipenet.InvalidStateError("move", s)
		}
		c.world.remove(s)
		err = c.graph.Move(s, p)
		c.world.add(s)
		return err
	})
}

// Rotate sets the facing of a loose segment.
func (c *Controller) Rotate(id pipenet.SegmentID, f grid.Facing) error {
	return c.run("rotate", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		return c.graph.Rotate(s, f)
	})
}

// Remove despawns a segment, detaching it first if anchored.
func (c *Controller) Remove(id pipenet.SegmentID) error {
	return c.run("remove", id, func() error {
		s, err := c.graph.Segment(id)
		if err != nil {
			return err
		}
		if err := c.graph.Despawn(s); err != nil {
			return err
		}
		c.world.remove(s)
		return nil
	})
}

// run serializes fn, then logs and records its outcome.
func (c *Controller) run(op string, id pipenet.SegmentID, fn func() error) error {
	fields := []logging.Field{logging.Operation(op)}
	if id != 0 {
		fields = append(fields, logging.SegmentID(uint64(id)))
	}
	timer := logging.StartTimer(c.logger, "placement operation", fields...)

	c.mu.Lock()
	err := fn()
	stats := c.graph.Stats()
	c.mu.Unlock()

	elapsed := timer.Elapsed()
	if err != nil {
		timer.EndError(err)
	} else {
		timer.End(logging.Count(stats.Networks))
	}

	if c.metrics != nil {
		c.metrics.RecordOperation(op, statusOf(err), elapsed)
		c.metrics.UpdateTopology(stats.Segments, stats.Anchored, stats.Networks)
	}
	return err
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case pipenet.IsCollision(err):
		return "collision"
	case pipenet.IsInvalidState(err):
		return "invalid_state"
	case pipenet.IsNotFound(err):
		return "not_found"
	default:
		return "rejected"
	}
}
