package placement

import (
	"fmt"
	"slices"

	"github.com/dd0wney/pipenet/pkg/config"
	"github.com/dd0wney/pipenet/pkg/logging"
	"github.com/dd0wney/pipenet/pkg/pipenet"
)

// ScenarioResult maps scenario names to the segments created for them and
// lists the steps that were rejected without aborting the run.
type ScenarioResult struct {
	IDs      map[string]pipenet.SegmentID
	Rejected []error
}

// RunScenario places every scenario segment, anchors the listed ones and
// applies the steps in order. Collisions and wrong-state steps are
// recorded in Rejected; any other failure stops the run.
func (c *Controller) RunScenario(sc *config.Scenario) (*ScenarioResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	res := &ScenarioResult{IDs: make(map[string]pipenet.SegmentID, len(sc.Segments))}

	names := make([]string, 0, len(sc.Segments))
	for name := range sc.Segments {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		id, err := c.Place(sc.Segments[name])
		if err != nil {
			return res, fmt.Errorf("place %q: %w", name, err)
		}
		res.IDs[name] = id
	}

	apply := func(label, name string, err error) error {
		if err == nil {
			return nil
		}
		if pipenet.IsCollision(err) || pipenet.IsInvalidState(err) {
			c.logger.Warn("scenario step rejected",
				logging.String("step", label),
				logging.String("segment", name),
				logging.Error(err))
			res.Rejected = append(res.Rejected, fmt.Errorf("%s %q: %w", label, name, err))
			return nil
		}
		return fmt.Errorf("%s %q: %w", label, name, err)
	}

	for _, name := range sc.Anchored {
		if err := apply("anchor", name, c.Anchor(res.IDs[name])); err != nil {
			return res, err
		}
	}

	for i, step := range sc.Steps {
		id := res.IDs[step.Segment]
		var err error
		switch step.Op {
		case "anchor":
			err = c.Anchor(id)
		case "unanchor":
			err = c.Unanchor(id)
		case "wrench":
			_, err = c.Wrench(id)
		case "move":
			err = c.Move(id, *step.To)
		case "rotate":
			var view SegmentView
			if view, err = c.Segment(id); err == nil {
				err = c.Rotate(id, view.Facing.Rotate())
			}
		case "remove":
			err = c.Remove(id)
		}
		if err := apply(fmt.Sprintf("step %d: %s", i, step.Op), step.Segment, err); err != nil {
			return res, err
		}
	}
	return res, nil
}
