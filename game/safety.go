package game

// SafeRegionSize counts the open cells pacman can reach without passing within radius of a hostile
// ghost. The breadth-first search stops after budget cells, so the result never exceeds budget.
// Pacman's own cell is always counted.
func SafeRegionSize(s State, radius, budget int) int {
	if budget <= 0 {
		return 0
	}

	walls := s.Walls()
	hostile := []Position{}
	for _, g := range s.Ghosts() {
		if !g.Scared() {
			hostile = append(hostile, g.Position)
		}
	}
	isSafe := func(p Position) bool {
		for _, h := range hostile {
			if ManhattanDistance(p, h) <= radius {
				return false
			}
		}
		return true
	}

	start := s.PacmanPosition()
	queue := []Position{start}
	visited := map[Position]bool{start: true}
	count := 0

	for len(queue) > 0 && count < budget {
		cur := queue[0]
		queue = queue[1:]
		count++

		for _, d := range Directions {
			next := cur.Next(d)
			if visited[next] || walls.Blocked(next.X, next.Y) || !isSafe(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	return count
}
