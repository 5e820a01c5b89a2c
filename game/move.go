package game

import (
	"fmt"

	"pacman/utils"
)

// Action is one of the four compass moves or Stop.
type Action int

const (
	North Action = iota
	South
	East
	West
	Stop
)

// Directions lists the compass moves in the order legal actions are generated.
var Directions = []Action{North, South, East, West}

func (a Action) String() string {
	switch a {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	case Stop:
		return "Stop"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	for _, a := range append(Directions, Stop) {
		if a.String() == name {
			return a, nil
		}
	}
	return Stop, fmt.Errorf("unknown action %q", name)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Position is a grid cell; x grows east and y grows south.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Next returns the cell reached by moving one step in direction a.
func (p Position) Next(a Action) Position {
	switch a {
	case North:
		p.Y--
	case South:
		p.Y++
	case East:
		p.X++
	case West:
		p.X--
	}
	return p
}

func ManhattanDistance(a, b Position) int {
	return utils.Abs(a.X-b.X) + utils.Abs(a.Y-b.Y)
}
