package game

// Grid is the static wall layout of a maze. It is shared between states and never mutated after
// construction.
type Grid struct {
	Width  int
	Height int
	cells  []bool // row-major, true for walls
}

// NewGrid creates an open grid of the given size.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// SetWall marks a cell as blocked. Only used while building a layout.
func (g *Grid) SetWall(x, y int) {
	if g.InBounds(x, y) {
		g.cells[y*g.Width+x] = true
	}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Blocked reports whether a cell is a wall. Cells outside the grid count as walls.
func (g *Grid) Blocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[y*g.Width+x]
}

// BlockedNeighbors counts the walls among the four cells adjacent to p.
func (g *Grid) BlockedNeighbors(p Position) int {
	count := 0
	for _, d := range Directions {
		n := p.Next(d)
		if g.Blocked(n.X, n.Y) {
			count++
		}
	}
	return count
}
