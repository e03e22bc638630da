// Package cube is the external coordinate form of a state: the 5-axis
// lattice representation exchanged with downstream collaborators.
package cube

import "github.com/san-kum/pentad/internal/dynamo"

// Point is a state expressed on named external axes.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	U float64 `json:"u"`
	V float64 `json:"v"`
}

func FromState(s dynamo.State) Point {
	return Point{X: s[0], Y: s[1], Z: s[2], U: s[3], V: s[4]}
}

func (p Point) State() dynamo.State {
	return dynamo.State{p.X, p.Y, p.Z, p.U, p.V}
}
