package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFacing is returned for names and values that are not one of
// the four cardinal facings.
var ErrInvalidFacing = errors.New("invalid facing")

// Facing is the cardinal direction a segment is placed in.
type Facing int

const (
	North Facing = iota
	South
	West
	East
)

// Axis groups facings that can connect to each other.
type Axis int

const (
	// Vertical is shared by North and South.
	Vertical Axis = iota
	// Horizontal is shared by East and West.
	Horizontal
)

var facingNames = [...]string{
	North: "north",
	South: "south",
	West:  "west",
	East:  "east",
}

// Facings lists every valid facing in declaration order.
var Facings = []Facing{North, South, West, East}

// String returns the lower-case name of the facing
func (f Facing) String() string {
	if f.Valid() {
		return facingNames[f]
	}
	return fmt.Sprintf("facing(%d)", int(f))
}

// Valid reports whether f is one of the four cardinal facings.
func (f Facing) Valid() bool {
	return f >= North && f <= East
}

// Axis returns the axis the facing lies on.
func (f Facing) Axis() Axis {
	if f == North || f == South {
		return Vertical
	}
	return Horizontal
}

// Opposite returns the facing pointing the other way along the same axis.
// An invalid facing is returned unchanged.
func (f Facing) Opposite() Facing {
	switch f {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return f
	}
}

// Rotate returns the next facing clockwise. An invalid facing is returned
// unchanged.
func (f Facing) Rotate() Facing {
	switch f {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	default:
		return f
	}
}

// ParseFacing converts a name (case-insensitive, single letters allowed)
// into a Facing.
func ParseFacing(s string) (Facing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	case "east", "e":
		return East, nil
	default:
		return North, fmt.Errorf("%w: unknown name %q", ErrInvalidFacing, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFacing, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(text []byte) error {
	parsed, err := ParseFacing(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Compatible reports whether two facings share an axis. Direction along
// the axis does not matter.
func Compatible(a, b Facing) bool {
	return a.Axis() == b.Axis()
}

// Adjacent returns the two cells a segment at p with facing f can connect
// to: y+1 and y-1 for the vertical axis, x+1 and x-1 for the horizontal one.
func Adjacent(p Point, f Facing) [2]Point {
	if f.Axis() == Vertical {
		return [2]Point{p.Add(Point{Y: 1}), p.Add(Point{Y: -1})}
	}
	return [2]Point{p.Add(Point{X: 1}), p.Add(Point{X: -1})}
}
