package grid

import "fmt"

// Pt is a convenience constructor for a Point on the z=0 plane.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Point is an integer grid cell. Z is carried through unchanged by
// every adjacency computation.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	Z int `yaml:"z" json:"z"`
}

// Add returns a copy of this point offset by other.
func (p Point) Add(other Point) Point {
	p.X += other.X
	p.Y += other.Y
	p.Z += other.Z
	return p
}

func (p Point) String() string {
	if p.Z == 0 {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}
