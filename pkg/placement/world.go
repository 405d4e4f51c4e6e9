package placement

import (
	"slices"

	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/pipenet"
)

// World indexes live segments by cell. It answers pipenet.GridQuery with
// the anchored occupants only.
type World struct {
	cells map[grid.Point][]*pipenet.Segment
}

// NewWorld creates an empty index.
func NewWorld() *World {
	return &World{cells: make(map[grid.Point][]*pipenet.Segment)}
}

// At implements pipenet.GridQuery.
func (w *World) At(p grid.Point) []*pipenet.Segment {
	var out []*pipenet.Segment
	for _, s := range w.cells[p] {
		if s.Live() && s.Anchored() {
			out = append(out, s)
		}
	}
	return out
}

// Occupants returns every live segment in p, anchored or not.
func (w *World) Occupants(p grid.Point) []*pipenet.Segment {
	return slices.Clone(w.cells[p])
}

func (w *World) add(s *pipenet.Segment) {
	w.cells[s.Position] = append(w.cells[s.Position], s)
}

func (w *World) remove(s *pipenet.Segment) {
	p := s.Position
	w.cells[p] = slices.DeleteFunc(w.cells[p], func(o *pipenet.Segment) bool { return o == s })
	if len(w.cells[p]) == 0 {
		delete(w.cells, p)
	}
}

