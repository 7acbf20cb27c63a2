package engine

// ManhattanDistance calculates the Manhattan distance between two cells
func ManhattanDistance(from, to Cell) int {
	return absInt(from.X-to.X) + absInt(from.Y-to.Y)
}
